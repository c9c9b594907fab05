package report

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sustainability-analytics/internal/model"
)

// fixture builds a deterministic dataset of n records cycling through
// product types.
func fixture(n int) model.Dataset {
	types := []string{"Steel Beam", "Glass Panel", "Oak Table"}
	dataset := make(model.Dataset, 0, n)
	for i := 1; i <= n; i++ {
		dataset = append(dataset, model.ProductRecord{
			ID:                   i,
			ProductType:          types[(i-1)%len(types)],
			RawMaterialUsageKg:   float64(50 + i),
			EnergyConsumptionKwh: float64(100 + 10*i),
			WasteGeneratedKg:     float64(60 + i), // all above the default threshold
			TransportDistanceKm:  float64(100 + i),
			CO2EmissionsKg:       float64(10 + i),
			RenewableEnergyPct:   float64((i * 7) % 101),
			CostUSD:              float64(500 + 5*i),
			DeliveryTimeDays:     float64(3 + i%10),
			SustainabilityScore:  float64((i * 13) % 101),
		})
	}
	return dataset
}

func TestHighWastePagePagination(t *testing.T) {
	// 150 rows, all passing the waste filter, ids 1..150 already sorted.
	dataset := fixture(150)

	result, err := highWastePage(dataset, DefaultOptions())
	require.NoError(t, err)

	// OFFSET 99 LIMIT 10 returns the 100th through 109th filtered rows.
	require.Len(t, result.Rows, 10)
	assert.Equal(t, "100", result.Rows[0][0])
	assert.Equal(t, "109", result.Rows[9][0])
	assert.Equal(t, []string{"id", "product_type", "waste_generated_kg", "cost_usd"}, result.Columns)
}

func TestHighWastePageOffsetBeyondEnd(t *testing.T) {
	dataset := fixture(50)

	result, err := highWastePage(dataset, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}

func TestHighWastePageNegativeOffset(t *testing.T) {
	opts := DefaultOptions()
	opts.PageOffset = -1

	_, err := highWastePage(fixture(10), opts)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestHighWastePageAppliesThreshold(t *testing.T) {
	dataset := fixture(120)
	// Push some rows under the threshold: they must not count toward paging.
	for i := 0; i < 20; i++ {
		dataset[i].WasteGeneratedKg = 1
	}
	opts := DefaultOptions()
	opts.PageOffset = 0
	opts.PageLimit = 5

	result, err := highWastePage(dataset, opts)
	require.NoError(t, err)
	require.Len(t, result.Rows, 5)
	assert.Equal(t, "21", result.Rows[0][0])
}

func TestSustainabilityTierLabels(t *testing.T) {
	dataset := fixture(10)

	result, err := sustainabilityTiers(dataset, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	assert.Equal(t, []string{"tier", "tier_label", "product_count", "min_score", "max_score"}, result.Columns)
	assert.Equal(t, "Gold", result.Rows[0][1])
	assert.Equal(t, "Silver", result.Rows[1][1])
	assert.Equal(t, "Bronze", result.Rows[2][1])

	// n=10, k=3 → bucket sizes [4,3,3]
	assert.Equal(t, "4", result.Rows[0][2])
	assert.Equal(t, "3", result.Rows[1][2])
	assert.Equal(t, "3", result.Rows[2][2])
}

func TestSustainabilityTiersScoreRangesDescend(t *testing.T) {
	result, err := sustainabilityTiers(fixture(30), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	// Gold's minimum score must be at least Silver's maximum, and so on.
	assert.GreaterOrEqual(t, toFloat(t, result.Rows[0][3]), toFloat(t, result.Rows[1][4]))
	assert.GreaterOrEqual(t, toFloat(t, result.Rows[1][3]), toFloat(t, result.Rows[2][4]))
}

func TestCostDeltaFirstRowEmpty(t *testing.T) {
	dataset := fixture(3)

	result, err := costDelta(dataset, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	// id order; first row has no previous cost
	assert.Equal(t, "1", result.Rows[0][0])
	assert.Equal(t, "", result.Rows[0][2])
	assert.Equal(t, "", result.Rows[0][3])

	// second row: cost 510 vs previous 505
	assert.Equal(t, "505.00", result.Rows[1][2])
	assert.Equal(t, "5.00", result.Rows[1][3])
}

func TestCO2MovingAveragePartitionStart(t *testing.T) {
	dataset := model.Dataset{
		{ID: 1, ProductType: "steel", CO2EmissionsKg: 10, SustainabilityScore: 50},
		{ID: 2, ProductType: "steel", CO2EmissionsKg: 20, SustainabilityScore: 50},
		{ID: 3, ProductType: "glass", CO2EmissionsKg: 40, SustainabilityScore: 50},
	}

	result, err := co2MovingAverage(dataset, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	// Rows grouped by product type then id; each partition's first row
	// averages only itself.
	assert.Equal(t, []string{"3", "glass", "40.00", "40.00"}, result.Rows[0])
	assert.Equal(t, []string{"1", "steel", "10.00", "10.00"}, result.Rows[1])
	assert.Equal(t, []string{"2", "steel", "20.00", "15.00"}, result.Rows[2])
}

func TestScoreAnomaliesSatisfyBothConditions(t *testing.T) {
	dataset := fixture(60)

	result, err := scoreAnomalies(dataset, DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, result.Rows)

	for _, row := range result.Rows {
		assert.Less(t, toFloat(t, row[2]), toFloat(t, row[4]))
		assert.Greater(t, toFloat(t, row[3]), toFloat(t, row[5]))
	}
}

// toFloat parses a formatted table cell back into a number.
func toFloat(t *testing.T, cell string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(cell, 64)
	require.NoError(t, err)
	return v
}

func TestEnergyBenchmarkFlags(t *testing.T) {
	dataset := model.Dataset{
		{ID: 1, ProductType: "steel", EnergyConsumptionKwh: 100, SustainabilityScore: 50},
		{ID: 2, ProductType: "steel", EnergyConsumptionKwh: 200, SustainabilityScore: 50},
		{ID: 3, ProductType: "steel", EnergyConsumptionKwh: 300, SustainabilityScore: 50},
	}

	result, err := energyBenchmark(dataset, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	// benchmark = 0.85 * 200 = 170 on every row
	for _, row := range result.Rows {
		assert.Equal(t, "170.00", row[3])
	}
	assert.Equal(t, "false", result.Rows[0][4]) // 100 <= 170
	assert.Equal(t, "true", result.Rows[1][4])  // 200 > 170
	assert.Equal(t, "true", result.Rows[2][4])  // 300 > 170
}

func TestCategorySummaryColumns(t *testing.T) {
	result, err := categorySummary(fixture(9), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"product_type", "product_count", "avg_score", "total_co2_kg", "avg_cost_usd"}, result.Columns)
	require.Len(t, result.Rows, 3)
	for _, row := range result.Rows {
		assert.Equal(t, "3", row[1], "each type appears three times in the fixture")
	}
}

func TestEnergyProfilePercentiles(t *testing.T) {
	dataset := model.Dataset{
		{ID: 1, ProductType: "steel", EnergyConsumptionKwh: 10, SustainabilityScore: 50},
		{ID: 2, ProductType: "steel", EnergyConsumptionKwh: 20, SustainabilityScore: 50},
		{ID: 3, ProductType: "steel", EnergyConsumptionKwh: 30, SustainabilityScore: 50},
	}

	result, err := energyProfile(dataset, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "20.00", row[1]) // avg
	assert.Equal(t, "20.00", row[2]) // median
	assert.Equal(t, "28.00", row[3]) // p90 at rank 0.9*2=1.8 → 20+0.8*10
}

func TestRenewableAdoptionShare(t *testing.T) {
	dataset := model.Dataset{
		{ID: 1, ProductType: "steel", RenewableEnergyPct: 80, SustainabilityScore: 50},
		{ID: 2, ProductType: "steel", RenewableEnergyPct: 20, SustainabilityScore: 50},
		{ID: 3, ProductType: "steel", RenewableEnergyPct: 60, SustainabilityScore: 50},
		{ID: 4, ProductType: "steel", RenewableEnergyPct: 40, SustainabilityScore: 50},
	}

	result, err := renewableAdoption(dataset, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	assert.Equal(t, "4", result.Rows[0][1])
	assert.Equal(t, "2", result.Rows[0][2])
	assert.Equal(t, "50.00", result.Rows[0][3])
}

func TestMaxTransportChainScalar(t *testing.T) {
	dataset := model.Dataset{
		{ID: 1, ProductType: "steel", TransportDistanceKm: 5, CO2EmissionsKg: 10, SustainabilityScore: 50},
		{ID: 2, ProductType: "steel", TransportDistanceKm: 5, CO2EmissionsKg: 20, SustainabilityScore: 50},
		{ID: 3, ProductType: "steel", TransportDistanceKm: 8, CO2EmissionsKg: 30, SustainabilityScore: 50},
	}

	result, err := maxTransportChain(dataset, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, []string{"60.00", "3"}, result.Rows[0])
}

func ExampleAnalysisNames() {
	for _, name := range AnalysisNames() {
		fmt.Println(name)
	}
	// Output:
	// category_summary
	// energy_profile
	// renewable_adoption
	// co2_moving_average
	// cost_delta
	// sustainability_tiers
	// max_transport_chain
	// score_anomalies
	// energy_benchmark
	// high_waste_page
}
