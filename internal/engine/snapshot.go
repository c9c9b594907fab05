package engine

import (
	"fmt"
	"sync"
	"time"

	"go-sustainability-analytics/internal/model"
)

// Snapshot is a recomputed stand-in for a materialized per-category
// summary: per product type it holds count, average score, total CO2 and
// average cost. Nothing persists — Refresh recomputes from the live
// dataset on demand, and the snapshot is discarded with the run.
type Snapshot struct {
	mu          sync.RWMutex
	groups      []GroupResult
	refreshedAt time.Time
}

// NewSnapshot builds a snapshot and computes its initial state.
func NewSnapshot(records []model.ProductRecord) (*Snapshot, error) {
	s := &Snapshot{}
	if err := s.Refresh(records); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh recomputes the per-category aggregates from the given dataset.
func (s *Snapshot) Refresh(records []model.ProductRecord) error {
	groups, err := Aggregate(records,
		func(r model.ProductRecord) string { return r.ProductType },
		map[string]Reducer{
			"avg_score":    Avg(func(r model.ProductRecord) float64 { return r.SustainabilityScore }),
			"total_co2_kg": Sum(func(r model.ProductRecord) float64 { return r.CO2EmissionsKg }),
			"avg_cost_usd": Avg(func(r model.ProductRecord) float64 { return r.CostUSD }),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to refresh snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
	s.refreshedAt = time.Now()
	return nil
}

// Groups returns the per-category aggregates of the last refresh.
func (s *Snapshot) Groups() []GroupResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups
}

// RefreshedAt returns when the snapshot was last recomputed.
func (s *Snapshot) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
