package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-sustainability-analytics/internal/model"
)

// Options configures a report run.
type Options struct {
	WasteThreshold float64  `json:"wasteThreshold"` // high_waste_page filter bound
	TileCount      int      `json:"tileCount"`      // sustainability_tiers bucket count
	MovingWindow   int      `json:"movingWindow"`   // preceding rows in co2_moving_average
	PageOffset     int      `json:"pageOffset"`     // high_waste_page rows to skip
	PageLimit      int      `json:"pageLimit"`      // high_waste_page rows to return
	Analyses       []string `json:"analyses"`       // subset to run; empty = all
}

// DefaultOptions returns the parameters the source queries used.
func DefaultOptions() Options {
	return Options{
		WasteThreshold: 50,
		TileCount:      3,
		MovingWindow:   2,
		PageOffset:     99,
		PageLimit:      10,
	}
}

// Driver orchestrates the named analyses over one loaded dataset.
// Every analysis is a pure function of the dataset, so they run
// concurrently with read-only shared access and no locking.
type Driver struct {
	RunID   string
	Dataset model.Dataset
	Opts    Options
	Tracker *model.ReportTracker
}

// NewDriver creates a driver for one report run over the given dataset.
func NewDriver(dataset model.Dataset, opts Options) *Driver {
	runID := uuid.NewString()
	return &Driver{
		RunID:   runID,
		Dataset: dataset,
		Opts:    opts,
		Tracker: model.NewReportTracker(runID, len(dataset)),
	}
}

// Run executes the selected analyses and returns their results in
// canonical report order. Any analysis failure fails the run.
func (d *Driver) Run(ctx context.Context) ([]model.AnalysisResult, error) {
	selected := d.selectAnalyses()
	fmt.Printf("📊 Report run %s: %d analyses over %d records\n", d.RunID, len(selected), len(d.Dataset))

	results := make([]model.AnalysisResult, len(selected))
	errs := make([]error, len(selected))

	var wg sync.WaitGroup
	wg.Add(len(selected))
	for i, entry := range selected {
		go func(slot int, entry analysisEntry) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[slot] = ctx.Err()
				return
			default:
			}

			start := time.Now()
			result, err := entry.Run(d.Dataset, d.Opts)
			end := time.Now()

			if err != nil {
				errs[slot] = fmt.Errorf("analysis %s: %w", entry.Name, err)
				d.Tracker.RecordAnalysis(entry.Name, start, end, 0, 1)
				fmt.Printf("❌ Analysis %s failed: %v\n", entry.Name, err)
				return
			}

			results[slot] = result
			d.Tracker.RecordAnalysis(entry.Name, start, end, result.RowCount, 0)
			fmt.Printf("📊 Analysis %s completed: %d rows in %v\n", entry.Name, result.RowCount, end.Sub(start))
		}(i, entry)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			d.Tracker.Finish("failed")
			return nil, err
		}
	}

	d.Tracker.Finish("completed")
	fmt.Printf("📊 Report Summary: %d analyses completed in %v\n", len(selected), d.Tracker.TotalDuration())
	return results, nil
}

// selectAnalyses resolves Opts.Analyses against the registry, keeping
// canonical order. Unknown names are skipped with a warning rather than
// failing the run.
func (d *Driver) selectAnalyses() []analysisEntry {
	if len(d.Opts.Analyses) == 0 {
		return registry
	}

	wanted := make(map[string]bool, len(d.Opts.Analyses))
	for _, name := range d.Opts.Analyses {
		wanted[name] = true
	}

	selected := make([]analysisEntry, 0, len(registry))
	for _, entry := range registry {
		if wanted[entry.Name] {
			selected = append(selected, entry)
			delete(wanted, entry.Name)
		}
	}
	for name := range wanted {
		fmt.Printf("⚠️ Unknown analysis requested: %s\n", name)
	}
	return selected
}
