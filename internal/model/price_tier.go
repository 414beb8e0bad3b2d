package model

// PriceTier maps a customer price band to an allotted job duration. Bands
// should not gap or overlap, but the resolver stays deterministic (first
// match in ascending PriceMin order wins) even when they do.
type PriceTier struct {
	ID              uint    `gorm:"primaryKey"`
	PriceMin        float64 `gorm:"not null"`
	PriceMax        float64 `gorm:"not null"`
	AllottedMinutes int     `gorm:"not null"`
}
