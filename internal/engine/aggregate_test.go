package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sustainability-analytics/internal/model"
)

// product builds a minimal record for engine tests.
func product(id int, productType string, mutate func(*model.ProductRecord)) model.ProductRecord {
	rec := model.ProductRecord{
		ID:                   id,
		ProductType:          productType,
		RawMaterialUsageKg:   10,
		EnergyConsumptionKwh: 100,
		WasteGeneratedKg:     5,
		TransportDistanceKm:  50,
		CO2EmissionsKg:       20,
		RenewableEnergyPct:   40,
		CostUSD:              200,
		DeliveryTimeDays:     7,
		SustainabilityScore:  60,
	}
	if mutate != nil {
		mutate(&rec)
	}
	return rec
}

func co2(r model.ProductRecord) float64    { return r.CO2EmissionsKg }
func energy(r model.ProductRecord) float64 { return r.EnergyConsumptionKwh }

func TestAggregateGroupAverageRoundTrip(t *testing.T) {
	records := []model.ProductRecord{
		product(1, "steel", func(r *model.ProductRecord) { r.CO2EmissionsKg = 10 }),
		product(2, "steel", func(r *model.ProductRecord) { r.CO2EmissionsKg = 30 }),
		product(3, "glass", func(r *model.ProductRecord) { r.CO2EmissionsKg = 50 }),
		product(4, "steel", func(r *model.ProductRecord) { r.CO2EmissionsKg = 20 }),
	}

	groups, err := Aggregate(records, func(r model.ProductRecord) string { return r.ProductType },
		map[string]Reducer{
			"sum_co2": Sum(co2),
			"avg_co2": Avg(co2),
			"count":   Count(),
		})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// avg must equal sum/count recomputed by hand for every group
	for _, g := range groups {
		assert.Equal(t, g.Metrics["sum_co2"]/g.Metrics["count"], g.Metrics["avg_co2"], "group %s", g.Key)
	}

	// first-seen key order
	assert.Equal(t, "steel", groups[0].Key)
	assert.Equal(t, "glass", groups[1].Key)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, float64(60), groups[0].Metrics["sum_co2"])
	assert.Equal(t, float64(20), groups[0].Metrics["avg_co2"])
}

func TestAggregateEmptyInput(t *testing.T) {
	groups, err := Aggregate(nil, func(r model.ProductRecord) string { return r.ProductType },
		map[string]Reducer{"count": Count()})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestCountIf(t *testing.T) {
	records := []model.ProductRecord{
		product(1, "steel", func(r *model.ProductRecord) { r.RenewableEnergyPct = 80 }),
		product(2, "steel", func(r *model.ProductRecord) { r.RenewableEnergyPct = 30 }),
		product(3, "steel", func(r *model.ProductRecord) { r.RenewableEnergyPct = 51 }),
	}

	reduce := CountIf(func(r model.ProductRecord) bool { return r.RenewableEnergyPct > 50 })
	count, err := reduce(records)
	require.NoError(t, err)
	assert.Equal(t, float64(2), count)
}

func TestMinMaxReducers(t *testing.T) {
	records := []model.ProductRecord{
		product(1, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 250 }),
		product(2, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 90 }),
		product(3, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 400 }),
	}

	minVal, err := Min(energy)(records)
	require.NoError(t, err)
	assert.Equal(t, float64(90), minVal)

	maxVal, err := Max(energy)(records)
	require.NoError(t, err)
	assert.Equal(t, float64(400), maxVal)
}

func TestReducersOnEmptyPartition(t *testing.T) {
	for name, reduce := range map[string]Reducer{
		"avg":        Avg(energy),
		"min":        Min(energy),
		"max":        Max(energy),
		"median":     Median(energy),
		"percentile": PercentileCont(energy, 0.9),
	} {
		_, err := reduce(nil)
		assert.ErrorIs(t, err, model.ErrEmptyDataset, "reducer %s", name)
	}
}

func TestPercentileContInterpolation(t *testing.T) {
	records := []model.ProductRecord{
		product(1, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 30 }),
		product(2, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 10 }),
		product(3, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 40 }),
		product(4, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 20 }),
	}

	// rank = p*(n-1): p=0.25 over [10,20,30,40] lands at rank 0.75
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.25, 17.5},
		{0.5, 25},
		{0.9, 37},
		{1, 40},
	}
	for _, tt := range tests {
		got, err := PercentileCont(energy, tt.p)(records)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "p=%v", tt.p)
	}
}

func TestPercentileContOutOfRange(t *testing.T) {
	records := []model.ProductRecord{product(1, "steel", nil)}
	_, err := PercentileCont(energy, 1.5)(records)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestMedianOddCount(t *testing.T) {
	records := []model.ProductRecord{
		product(1, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 300 }),
		product(2, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 100 }),
		product(3, "steel", func(r *model.ProductRecord) { r.EnergyConsumptionKwh = 200 }),
	}

	got, err := Median(energy)(records)
	require.NoError(t, err)
	assert.Equal(t, float64(200), got)
}

func TestSortGroupsStable(t *testing.T) {
	groups := []GroupResult{
		{Key: "a", Metrics: map[string]float64{"v": 2}},
		{Key: "b", Metrics: map[string]float64{"v": 1}},
		{Key: "c", Metrics: map[string]float64{"v": 2}},
	}

	SortGroups(groups, func(x, y GroupResult) bool { return x.Metrics["v"] > y.Metrics["v"] })

	// equal groups keep first-seen relative order
	assert.Equal(t, []string{"a", "c", "b"}, []string{groups[0].Key, groups[1].Key, groups[2].Key})
}
