package engine

import (
	"gonum.org/v1/gonum/stat"

	"go-sustainability-analytics/internal/model"
)

// StatsContext carries dataset-wide aggregates, computed exactly once per
// report run and reused for every row evaluation. Threshold predicates
// read from it instead of recomputing averages per row.
type StatsContext struct {
	RecordCount  int     `json:"record_count"`
	AvgScore     float64 `json:"avg_score"`
	AvgRenewable float64 `json:"avg_renewable"`
	AvgEnergy    float64 `json:"avg_energy"`
	AvgWaste     float64 `json:"avg_waste"`
	AvgCO2       float64 `json:"avg_co2"`
}

// NewStatsContext computes the dataset-wide aggregates in a single pass
// per measure. Zero-record datasets yield a zero-valued context.
func NewStatsContext(records []model.ProductRecord) StatsContext {
	ctx := StatsContext{RecordCount: len(records)}
	if len(records) == 0 {
		return ctx
	}

	scores := make([]float64, len(records))
	renewables := make([]float64, len(records))
	energies := make([]float64, len(records))
	wastes := make([]float64, len(records))
	emissions := make([]float64, len(records))
	for i, rec := range records {
		scores[i] = rec.SustainabilityScore
		renewables[i] = rec.RenewableEnergyPct
		energies[i] = rec.EnergyConsumptionKwh
		wastes[i] = rec.WasteGeneratedKg
		emissions[i] = rec.CO2EmissionsKg
	}

	ctx.AvgScore = stat.Mean(scores, nil)
	ctx.AvgRenewable = stat.Mean(renewables, nil)
	ctx.AvgEnergy = stat.Mean(energies, nil)
	ctx.AvgWaste = stat.Mean(wastes, nil)
	ctx.AvgCO2 = stat.Mean(emissions, nil)
	return ctx
}

// ContextPredicate evaluates a record against precomputed aggregates.
type ContextPredicate func(rec model.ProductRecord, ctx StatsContext) bool

// FilterWith returns the records satisfying the predicate, input order
// preserved. The context is shared across all evaluations so no row
// triggers an aggregate recomputation.
func FilterWith(records []model.ProductRecord, ctx StatsContext, pred ContextPredicate) []model.ProductRecord {
	matched := make([]model.ProductRecord, 0)
	for _, rec := range records {
		if pred(rec, ctx) {
			matched = append(matched, rec)
		}
	}
	return matched
}
