package engine

import (
	"context"
	"fmt"
	"log"
)

// CustomerMetrics is the aggregate of a customer's completed-job history.
type CustomerMetrics struct {
	AverageEfficiency int `json:"averageEfficiency"`
	AverageWageRatio  int `json:"averageWageRatio"`
	ValidJobs         int `json:"validJobs"`
}

// ComputeCustomerMetrics recomputes and persists a customer's stored
// metrics from every fully completed job. Jobs without a measurable span
// are excluded from averaging but the customer still gets a row update.
// Friends & family customers are exempt: their work is not billed, so no
// commercial metric is computed or stored. A missing customer aborts with
// the lookup error; nothing partial is written.
func (e *Engine) ComputeCustomerMetrics(ctx context.Context, customerID uint) (CustomerMetrics, error) {
	customer, err := e.store.GetCustomer(ctx, customerID)
	if err != nil {
		return CustomerMetrics{}, fmt.Errorf("customer %d lookup failed: %w", customerID, err)
	}

	if customer.IsFriendsFamily {
		log.Printf("skipping metrics for friends & family customer %d (%s)", customer.ID, customer.Name)
		return CustomerMetrics{}, nil
	}

	snap, err := e.snapshot(ctx)
	if err != nil {
		return CustomerMetrics{}, err
	}
	tiers, err := e.store.ListPriceTiers(ctx)
	if err != nil {
		return CustomerMetrics{}, err
	}

	completed, err := e.store.CompletedJobsWithEntries(ctx, customerID)
	if err != nil {
		return CustomerMetrics{}, err
	}

	var efficiencies, wageRatios []int
	for _, jw := range completed {
		span, ok := ExtractSpan(jw.Entries)
		if !ok || span.Hours() <= 0 {
			continue
		}
		price := jw.Job.Price
		if price == 0 {
			price = customer.Price
		}
		expected := ExpectedHours(customer, tiers, price)
		efficiencies = append(efficiencies, Efficiency(expected, span.Hours()))
		wageRatios = append(wageRatios, WageRatio(WageCost(jw.Entries, snap.PayRatePerHour), price, false))
	}

	metrics := CustomerMetrics{ValidJobs: len(efficiencies)}
	var stored *int
	if metrics.ValidJobs > 0 {
		metrics.AverageEfficiency = MeanOfRounded(efficiencies)
		metrics.AverageWageRatio = MeanOfRounded(wageRatios)
		v := metrics.AverageWageRatio
		stored = &v
	}

	if err := e.store.SaveCustomerMetrics(ctx, customerID, stored); err != nil {
		return CustomerMetrics{}, err
	}
	return metrics, nil
}
