package engine

import (
	"sort"

	"go-sustainability-analytics/internal/model"
)

// ChainStep is one link of the distance-ordered impact chain with its
// running cumulative CO2.
type ChainStep struct {
	ID                  int     `json:"id"`
	TransportDistanceKm float64 `json:"transport_distance_km"`
	CO2EmissionsKg      float64 `json:"co2_emissions_kg"`
	CumulativeCO2Kg     float64 `json:"cumulative_co2_kg"`
}

// ChainTrajectory computes the cumulative-impact chain over the
// transport-distance partial order: record A chains to record B whenever
// B's distance is >= A's (ties included, the relation is reflexive and
// transitive). Sorting by (distance, ID) ascending and taking a running
// prefix sum of CO2 yields every reachable chain value — one sort and
// one scan instead of a recursive self-join over the cross relation.
func ChainTrajectory(records []model.ProductRecord) []ChainStep {
	ordered := make([]model.ProductRecord, len(records))
	copy(ordered, records)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].TransportDistanceKm != ordered[j].TransportDistanceKm {
			return ordered[i].TransportDistanceKm < ordered[j].TransportDistanceKm
		}
		return ordered[i].ID < ordered[j].ID
	})

	steps := make([]ChainStep, len(ordered))
	var running float64
	for i, rec := range ordered {
		running += rec.CO2EmissionsKg
		steps[i] = ChainStep{
			ID:                  rec.ID,
			TransportDistanceKm: rec.TransportDistanceKm,
			CO2EmissionsKg:      rec.CO2EmissionsKg,
			CumulativeCO2Kg:     running,
		}
	}
	return steps
}

// MaxChainImpact returns the maximum cumulative CO2 reachable through the
// chain — the final prefix sum of the distance-ordered trajectory.
// Returns 0 for an empty dataset.
func MaxChainImpact(records []model.ProductRecord) float64 {
	steps := ChainTrajectory(records)
	if len(steps) == 0 {
		return 0
	}
	return steps[len(steps)-1].CumulativeCO2Kg
}
