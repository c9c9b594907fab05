package report

import (
	"fmt"
	"sort"

	"go-sustainability-analytics/internal/engine"
	"go-sustainability-analytics/internal/model"
	"go-sustainability-analytics/pkg/utils"
)

// Analysis names, in canonical report order.
const (
	AnalysisCategorySummary     = "category_summary"
	AnalysisEnergyProfile       = "energy_profile"
	AnalysisRenewableAdoption   = "renewable_adoption"
	AnalysisCO2MovingAverage    = "co2_moving_average"
	AnalysisCostDelta           = "cost_delta"
	AnalysisSustainabilityTiers = "sustainability_tiers"
	AnalysisMaxTransportChain   = "max_transport_chain"
	AnalysisScoreAnomalies      = "score_anomalies"
	AnalysisEnergyBenchmark     = "energy_benchmark"
	AnalysisHighWastePage       = "high_waste_page"
)

// AnalysisFunc computes one named analysis as a pure function of the
// loaded dataset.
type AnalysisFunc func(dataset model.Dataset, opts Options) (model.AnalysisResult, error)

// analysisEntry pairs a canonical name with its implementation.
type analysisEntry struct {
	Name string
	Run  AnalysisFunc
}

// registry lists all analyses in canonical report order.
var registry = []analysisEntry{
	{AnalysisCategorySummary, categorySummary},
	{AnalysisEnergyProfile, energyProfile},
	{AnalysisRenewableAdoption, renewableAdoption},
	{AnalysisCO2MovingAverage, co2MovingAverage},
	{AnalysisCostDelta, costDelta},
	{AnalysisSustainabilityTiers, sustainabilityTiers},
	{AnalysisMaxTransportChain, maxTransportChain},
	{AnalysisScoreAnomalies, scoreAnomalies},
	{AnalysisEnergyBenchmark, energyBenchmark},
	{AnalysisHighWastePage, highWastePage},
}

// AnalysisNames returns the canonical analysis names in report order.
func AnalysisNames() []string {
	names := make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.Name
	}
	return names
}

// ------------------- Grouped analyses -------------------

// categorySummary reports per-category record counts, average score,
// total CO2 and average cost. Served from a refreshable snapshot — the
// recomputed stand-in for the source's materialized view.
func categorySummary(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	snapshot, err := engine.NewSnapshot(dataset)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	groups := snapshot.Groups()
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			utils.FormatInt(g.Count),
			utils.FormatFloat(g.Metrics["avg_score"]),
			utils.FormatFloat(g.Metrics["total_co2_kg"]),
			utils.FormatFloat(g.Metrics["avg_cost_usd"]),
		})
	}

	return newResult(AnalysisCategorySummary,
		[]string{"product_type", "product_count", "avg_score", "total_co2_kg", "avg_cost_usd"},
		rows), nil
}

// energyProfile reports average, median and 90th-percentile energy
// consumption per product type.
func energyProfile(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	energy := func(r model.ProductRecord) float64 { return r.EnergyConsumptionKwh }

	groups, err := engine.Aggregate(dataset, byProductType, map[string]engine.Reducer{
		"avg_energy_kwh":    engine.Avg(energy),
		"median_energy_kwh": engine.Median(energy),
		"p90_energy_kwh":    engine.PercentileCont(energy, 0.9),
	})
	if err != nil {
		return model.AnalysisResult{}, err
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			utils.FormatFloat(g.Metrics["avg_energy_kwh"]),
			utils.FormatFloat(g.Metrics["median_energy_kwh"]),
			utils.FormatFloat(g.Metrics["p90_energy_kwh"]),
		})
	}

	return newResult(AnalysisEnergyProfile,
		[]string{"product_type", "avg_energy_kwh", "median_energy_kwh", "p90_energy_kwh"},
		rows), nil
}

// renewableAdoption reports, per product type, how many products run on
// more than 50% renewable energy and the share they represent.
func renewableAdoption(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	highRenewable := func(r model.ProductRecord) bool { return r.RenewableEnergyPct > 50 }

	groups, err := engine.Aggregate(dataset, byProductType, map[string]engine.Reducer{
		"high_renewable_count": engine.CountIf(highRenewable),
	})
	if err != nil {
		return model.AnalysisResult{}, err
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		share := 100 * g.Metrics["high_renewable_count"] / float64(g.Count)
		rows = append(rows, []string{
			g.Key,
			utils.FormatInt(g.Count),
			utils.FormatInt(int(g.Metrics["high_renewable_count"])),
			utils.FormatFloat(share),
		})
	}

	return newResult(AnalysisRenewableAdoption,
		[]string{"product_type", "product_count", "high_renewable_count", "renewable_share_pct"},
		rows), nil
}

// ------------------- Windowed analyses -------------------

// co2MovingAverage reports each product's CO2 emissions next to the
// moving average over the current and two preceding products of the same
// type, ordered by id. The frame truncates at each partition start.
func co2MovingAverage(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	movingAvg, err := engine.MovingAverage(dataset,
		byProductType,
		byIDAscending,
		func(r model.ProductRecord) float64 { return r.CO2EmissionsKg },
		opts.MovingWindow,
	)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	// Present partition by partition, ordered by id within each.
	indices := make([]int, len(dataset))
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(i, j int) bool {
		a, b := dataset[indices[i]], dataset[indices[j]]
		if a.ProductType != b.ProductType {
			return a.ProductType < b.ProductType
		}
		return a.ID < b.ID
	})

	rows := make([][]string, 0, len(dataset))
	for _, idx := range indices {
		rec := dataset[idx]
		rows = append(rows, []string{
			utils.FormatInt(rec.ID),
			rec.ProductType,
			utils.FormatFloat(rec.CO2EmissionsKg),
			utils.FormatFloat(movingAvg[idx]),
		})
	}

	return newResult(AnalysisCO2MovingAverage,
		[]string{"id", "product_type", "co2_emissions_kg", "moving_avg_co2_kg"},
		rows), nil
}

// costDelta reports each product's cost against the previous product in
// id order. The first row has no previous value and renders empty delta
// columns.
func costDelta(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	cost := func(r model.ProductRecord) float64 { return r.CostUSD }
	lagged := engine.Lag(dataset, byIDAscending, cost)

	indices := make([]int, len(dataset))
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(i, j int) bool { return dataset[indices[i]].ID < dataset[indices[j]].ID })

	rows := make([][]string, 0, len(dataset))
	for _, idx := range indices {
		rec := dataset[idx]
		prev, delta := "", ""
		if lagged[idx].Valid {
			prev = utils.FormatFloat(lagged[idx].Value)
			delta = utils.FormatFloat(rec.CostUSD - lagged[idx].Value)
		}
		rows = append(rows, []string{
			utils.FormatInt(rec.ID),
			utils.FormatFloat(rec.CostUSD),
			prev,
			delta,
		})
	}

	return newResult(AnalysisCostDelta,
		[]string{"id", "cost_usd", "prev_cost_usd", "cost_delta_usd"},
		rows), nil
}

// sustainabilityTiers buckets all products into opts.TileCount tiers by
// sustainability score descending (ties by id) and reports per-tier
// counts and score ranges. With three tiers the labels are
// Gold/Silver/Bronze.
func sustainabilityTiers(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	byScoreDesc := func(a, b model.ProductRecord) bool {
		return a.SustainabilityScore > b.SustainabilityScore
	}
	tiles, err := engine.NTile(dataset, byScoreDesc, opts.TileCount)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	type tierStats struct {
		count    int
		minScore float64
		maxScore float64
	}
	stats := make(map[int]*tierStats)
	for i, rec := range dataset {
		tier := tiles[i]
		ts, exists := stats[tier]
		if !exists {
			ts = &tierStats{minScore: rec.SustainabilityScore, maxScore: rec.SustainabilityScore}
			stats[tier] = ts
		}
		ts.count++
		if rec.SustainabilityScore < ts.minScore {
			ts.minScore = rec.SustainabilityScore
		}
		if rec.SustainabilityScore > ts.maxScore {
			ts.maxScore = rec.SustainabilityScore
		}
	}

	rows := make([][]string, 0, opts.TileCount)
	for tier := 1; tier <= opts.TileCount; tier++ {
		ts, exists := stats[tier]
		if !exists {
			continue
		}
		rows = append(rows, []string{
			utils.FormatInt(tier),
			tierLabel(tier, opts.TileCount),
			utils.FormatInt(ts.count),
			utils.FormatFloat(ts.minScore),
			utils.FormatFloat(ts.maxScore),
		})
	}

	return newResult(AnalysisSustainabilityTiers,
		[]string{"tier", "tier_label", "product_count", "min_score", "max_score"},
		rows), nil
}

// tierLabel names a tier. The classic three-tier split gets medal names.
func tierLabel(tier, tileCount int) string {
	if tileCount == 3 {
		switch tier {
		case 1:
			return "Gold"
		case 2:
			return "Silver"
		case 3:
			return "Bronze"
		}
	}
	return fmt.Sprintf("Tier %d", tier)
}

// ------------------- Chain, threshold, benchmark, pagination -------------------

// maxTransportChain reports the maximum cumulative CO2 reachable by
// chaining products through the transport-distance order.
func maxTransportChain(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	maxImpact := engine.MaxChainImpact(dataset)

	rows := [][]string{{
		utils.FormatFloat(maxImpact),
		utils.FormatInt(len(dataset)),
	}}
	return newResult(AnalysisMaxTransportChain,
		[]string{"max_cumulative_co2_kg", "chain_length"},
		rows), nil
}

// scoreAnomalies reports products scoring below the dataset-wide average
// despite above-average renewable energy usage. Both averages come from
// a stats context computed once for the whole run of the filter.
func scoreAnomalies(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	statsCtx := engine.NewStatsContext(dataset)
	anomalies := engine.FilterWith(dataset, statsCtx, func(rec model.ProductRecord, ctx engine.StatsContext) bool {
		return rec.SustainabilityScore < ctx.AvgScore && rec.RenewableEnergyPct > ctx.AvgRenewable
	})

	rows := make([][]string, 0, len(anomalies))
	for _, rec := range anomalies {
		rows = append(rows, []string{
			utils.FormatInt(rec.ID),
			rec.ProductType,
			utils.FormatFloat(rec.SustainabilityScore),
			utils.FormatFloat(rec.RenewableEnergyPct),
			utils.FormatFloat(statsCtx.AvgScore),
			utils.FormatFloat(statsCtx.AvgRenewable),
		})
	}

	return newResult(AnalysisScoreAnomalies,
		[]string{"id", "product_type", "sustainability_score", "renewable_energy_percentage", "avg_score", "avg_renewable"},
		rows), nil
}

// energyBenchmark compares every product's energy consumption against
// its category benchmark (0.85 * category average), using the memoized
// benchmark table instead of a per-row aggregate.
func energyBenchmark(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	table, err := engine.NewBenchmarkTable(dataset)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	rows := make([][]string, 0, len(dataset))
	for _, rec := range dataset {
		benchmark, ok := table.Lookup(rec.ProductType)
		if !ok {
			return model.AnalysisResult{}, fmt.Errorf("no benchmark for product type %q", rec.ProductType)
		}
		rows = append(rows, []string{
			utils.FormatInt(rec.ID),
			rec.ProductType,
			utils.FormatFloat(rec.EnergyConsumptionKwh),
			utils.FormatFloat(benchmark),
			utils.FormatBool(rec.EnergyConsumptionKwh > benchmark),
		})
	}

	return newResult(AnalysisEnergyBenchmark,
		[]string{"id", "product_type", "energy_consumption_kwh", "benchmark_kwh", "above_benchmark"},
		rows), nil
}

// highWastePage reports one page of high-waste products: filter by the
// waste threshold, sort by id ascending, then skip PageOffset rows and
// take PageLimit — exact OFFSET/LIMIT semantics, so offset 99 skips 99
// rows and the page starts at the 100th filtered row.
func highWastePage(dataset model.Dataset, opts Options) (model.AnalysisResult, error) {
	if opts.PageOffset < 0 || opts.PageLimit < 0 {
		return model.AnalysisResult{}, fmt.Errorf("offset %d limit %d: %w",
			opts.PageOffset, opts.PageLimit, model.ErrInvalidParameter)
	}

	filtered := make([]model.ProductRecord, 0)
	for _, rec := range dataset {
		if rec.WasteGeneratedKg > opts.WasteThreshold {
			filtered = append(filtered, rec)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	start := opts.PageOffset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + opts.PageLimit
	if end > len(filtered) {
		end = len(filtered)
	}
	page := filtered[start:end]

	rows := make([][]string, 0, len(page))
	for _, rec := range page {
		rows = append(rows, []string{
			utils.FormatInt(rec.ID),
			rec.ProductType,
			utils.FormatFloat(rec.WasteGeneratedKg),
			utils.FormatFloat(rec.CostUSD),
		})
	}

	return newResult(AnalysisHighWastePage,
		[]string{"id", "product_type", "waste_generated_kg", "cost_usd"},
		rows), nil
}

// ------------------- Shared helpers -------------------

func byProductType(r model.ProductRecord) string { return r.ProductType }

// byIDAscending orders records by id. Window functions additionally
// tie-break by id, which is a no-op here.
func byIDAscending(a, b model.ProductRecord) bool { return a.ID < b.ID }

func newResult(name string, columns []string, rows [][]string) model.AnalysisResult {
	return model.AnalysisResult{
		Name:     name,
		Columns:  columns,
		Rows:     rows,
		RowCount: len(rows),
	}
}
