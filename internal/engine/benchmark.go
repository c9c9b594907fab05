package engine

import (
	"fmt"

	"go-sustainability-analytics/internal/model"
)

// benchmarkFactor scales the per-category average energy consumption into
// its benchmark value.
const benchmarkFactor = 0.85

// BenchmarkTable memoizes the per-category energy benchmark for one
// report run: 0.85 * avg(energy_consumption_kwh) per product type.
// Built with a single aggregation pass so per-row lookups are O(1)
// instead of recomputing an O(n) average for every row.
type BenchmarkTable struct {
	benchmarks map[string]float64
}

// NewBenchmarkTable computes benchmarks for every product type present
// in the dataset.
func NewBenchmarkTable(records []model.ProductRecord) (*BenchmarkTable, error) {
	groups, err := Aggregate(records,
		func(r model.ProductRecord) string { return r.ProductType },
		map[string]Reducer{
			"avg_energy": Avg(func(r model.ProductRecord) float64 { return r.EnergyConsumptionKwh }),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build benchmark table: %w", err)
	}

	benchmarks := make(map[string]float64, len(groups))
	for _, g := range groups {
		benchmarks[g.Key] = benchmarkFactor * g.Metrics["avg_energy"]
	}
	return &BenchmarkTable{benchmarks: benchmarks}, nil
}

// Lookup returns the benchmark for a product type. ok is false for a
// type absent from the dataset the table was built from.
func (bt *BenchmarkTable) Lookup(productType string) (benchmark float64, ok bool) {
	benchmark, ok = bt.benchmarks[productType]
	return benchmark, ok
}

// Size returns the number of distinct product types in the table.
func (bt *BenchmarkTable) Size() int {
	return len(bt.benchmarks)
}
