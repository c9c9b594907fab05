package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-sustainability-analytics/internal/pipeline"
	"go-sustainability-analytics/internal/report"
	"go-sustainability-analytics/internal/store"
	"go-sustainability-analytics/pkg/utils"
)

var (
	inputPath      string
	outputDir      string
	exportFormat   string
	dbPath         string
	wasteThreshold float64
	tileCount      int
	movingWindow   int
	pageOffset     int
	pageLimit      int
	analyses       []string
	quiet          bool
)

var rootCmd = &cobra.Command{
	Use:   "sustain-report",
	Short: "Run sustainability analyses over a product dataset",
	Long: `sustain-report loads a product sustainability CSV into memory and runs
the named analyses (category summaries, energy profiles, moving averages,
tiers, transport chains, anomaly detection, benchmarks and pagination),
rendering each as a table and exporting it per run.`,
	RunE: runReport,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV file path or URL with the product dataset (required)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "exports", "base directory for per-run output files")
	rootCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format: csv or json")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "optional SQLite database to store run results")
	rootCmd.Flags().Float64Var(&wasteThreshold, "waste-threshold", report.DefaultOptions().WasteThreshold, "waste filter bound for high_waste_page (kg)")
	rootCmd.Flags().IntVar(&tileCount, "tiles", report.DefaultOptions().TileCount, "tier count for sustainability_tiers")
	rootCmd.Flags().IntVar(&movingWindow, "moving-window", report.DefaultOptions().MovingWindow, "preceding rows in co2_moving_average")
	rootCmd.Flags().IntVar(&pageOffset, "offset", report.DefaultOptions().PageOffset, "rows to skip in high_waste_page")
	rootCmd.Flags().IntVar(&pageLimit, "limit", report.DefaultOptions().PageLimit, "rows to return in high_waste_page")
	rootCmd.Flags().StringSliceVarP(&analyses, "analysis", "a", nil, "analyses to run (default all)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip stdout table rendering")
	rootCmd.MarkFlagRequired("input")
}

func runReport(cmd *cobra.Command, args []string) error {
	dataset, err := pipeline.LoadDataset(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := pipeline.ValidateDataset(dataset); err != nil {
		return fmt.Errorf("failed to validate dataset: %w", err)
	}

	opts := report.Options{
		WasteThreshold: wasteThreshold,
		TileCount:      tileCount,
		MovingWindow:   movingWindow,
		PageOffset:     pageOffset,
		PageLimit:      pageLimit,
		Analyses:       analyses,
	}

	driver := report.NewDriver(dataset, opts)

	if dbPath != "" {
		if err := store.InitDB(dbPath); err != nil {
			return fmt.Errorf("failed to init results database: %w", err)
		}
		if err := store.SaveRun(driver.RunID, inputPath, len(dataset)); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
	}

	results, err := driver.Run(cmd.Context())
	if err != nil {
		if dbPath != "" {
			store.UpdateRunStatus(driver.RunID, "failed")
		}
		return err
	}

	if !quiet {
		for _, result := range results {
			if err := utils.RenderTable(os.Stdout, result.Name, result.Columns, result.Rows); err != nil {
				return err
			}
		}
	}

	exporter := report.NewExportManager(driver.RunID, outputDir, exportFormat)
	exporter.ExportAll(results)

	if dbPath != "" {
		for _, result := range results {
			if err := store.SaveAnalysisResult(driver.RunID, result); err != nil {
				return fmt.Errorf("failed to save analysis result: %w", err)
			}
		}
		if err := store.UpdateRunStatus(driver.RunID, "completed"); err != nil {
			return fmt.Errorf("failed to update run status: %w", err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
