package model

// Setting is one key/value row of the global settings table. The engine never
// reads these rows directly; it builds a typed snapshot per computation.
type Setting struct {
	Key   string `gorm:"primaryKey;size:128"`
	Value string `gorm:"not null"`
}
