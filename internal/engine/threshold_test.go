package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-sustainability-analytics/internal/model"
)

func TestNewStatsContextAverages(t *testing.T) {
	records := []model.ProductRecord{
		product(1, "steel", func(r *model.ProductRecord) {
			r.SustainabilityScore, r.RenewableEnergyPct = 40, 20
		}),
		product(2, "steel", func(r *model.ProductRecord) {
			r.SustainabilityScore, r.RenewableEnergyPct = 80, 60
		}),
	}

	ctx := NewStatsContext(records)
	assert.Equal(t, 2, ctx.RecordCount)
	assert.Equal(t, float64(60), ctx.AvgScore)
	assert.Equal(t, float64(40), ctx.AvgRenewable)
}

func TestNewStatsContextEmpty(t *testing.T) {
	ctx := NewStatsContext(nil)
	assert.Equal(t, 0, ctx.RecordCount)
	assert.Equal(t, float64(0), ctx.AvgScore)
}

func TestFilterWithAnomalyConditions(t *testing.T) {
	records := []model.ProductRecord{
		// below-average score, above-average renewable → anomaly
		product(1, "steel", func(r *model.ProductRecord) {
			r.SustainabilityScore, r.RenewableEnergyPct = 30, 90
		}),
		// above-average score → not an anomaly
		product(2, "steel", func(r *model.ProductRecord) {
			r.SustainabilityScore, r.RenewableEnergyPct = 90, 80
		}),
		// below-average renewable → not an anomaly
		product(3, "steel", func(r *model.ProductRecord) {
			r.SustainabilityScore, r.RenewableEnergyPct = 40, 10
		}),
		product(4, "glass", func(r *model.ProductRecord) {
			r.SustainabilityScore, r.RenewableEnergyPct = 50, 70
		}),
	}

	ctx := NewStatsContext(records)
	anomalies := FilterWith(records, ctx, func(rec model.ProductRecord, c StatsContext) bool {
		return rec.SustainabilityScore < c.AvgScore && rec.RenewableEnergyPct > c.AvgRenewable
	})

	// every returned row satisfies both conditions
	for _, rec := range anomalies {
		assert.Less(t, rec.SustainabilityScore, ctx.AvgScore)
		assert.Greater(t, rec.RenewableEnergyPct, ctx.AvgRenewable)
	}

	// and no qualifying row is missing
	wantIDs := []int{1, 4}
	gotIDs := make([]int, len(anomalies))
	for i, rec := range anomalies {
		gotIDs[i] = rec.ID
	}
	assert.Equal(t, wantIDs, gotIDs)
}

func TestFilterWithPreservesOrder(t *testing.T) {
	records := []model.ProductRecord{
		product(5, "steel", nil),
		product(2, "steel", nil),
		product(9, "steel", nil),
	}

	all := FilterWith(records, StatsContext{}, func(model.ProductRecord, StatsContext) bool { return true })
	assert.Equal(t, []int{5, 2, 9}, []int{all[0].ID, all[1].ID, all[2].ID})
}
