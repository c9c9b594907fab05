package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go-sustainability-analytics/internal/model"
	"go-sustainability-analytics/pkg/utils"
)

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

// ExportManager writes analysis results to per-run output files.
type ExportManager struct {
	RunID   string
	Outputs *utils.OutputManager
	Format  string // "csv" or "json"
}

// NewExportManager creates an export manager for one report run.
func NewExportManager(runID, baseOutputDir, format string) *ExportManager {
	return &ExportManager{
		RunID:   runID,
		Outputs: utils.NewOutputManager(baseOutputDir),
		Format:  format,
	}
}

// ExportAll writes every analysis result to its own file under the run's
// output directory.
func (em *ExportManager) ExportAll(results []model.AnalysisResult) []ExportResult {
	exports := make([]ExportResult, 0, len(results))
	for _, result := range results {
		var exported ExportResult
		switch em.Format {
		case "json":
			exported = em.exportToJSON(result)
		default:
			exported = em.exportToCSV(result)
		}
		exports = append(exports, exported)

		if exported.Success {
			fmt.Printf("✅ Export successful: %d rows exported to %s\n", exported.RecordCount, exported.Path)
		} else {
			fmt.Printf("❌ Export failed for %s: %s\n", result.Name, exported.Error)
		}
	}
	return exports
}

// exportToCSV writes one analysis result as a CSV file with its declared
// column header.
func (em *ExportManager) exportToCSV(result model.AnalysisResult) ExportResult {
	exported := ExportResult{Type: "csv", ExportedAt: time.Now()}

	path, err := em.Outputs.GetOutputFilePath(em.RunID, result.Name+".csv")
	if err != nil {
		exported.Error = err.Error()
		return exported
	}
	exported.Path = path

	file, err := os.Create(path)
	if err != nil {
		exported.Error = fmt.Sprintf("failed to create file: %v", err)
		return exported
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(result.Columns); err != nil {
		exported.Error = fmt.Sprintf("failed to write header: %v", err)
		return exported
	}
	for _, row := range result.Rows {
		if err := writer.Write(row); err != nil {
			exported.Error = fmt.Sprintf("failed to write row: %v", err)
			return exported
		}
		exported.RecordCount++
	}

	exported.Success = true
	return exported
}

// exportToJSON writes one analysis result as an indented JSON document
// with export metadata.
func (em *ExportManager) exportToJSON(result model.AnalysisResult) ExportResult {
	exported := ExportResult{Type: "json", ExportedAt: time.Now()}

	path, err := em.Outputs.GetOutputFilePath(em.RunID, result.Name+".json")
	if err != nil {
		exported.Error = err.Error()
		return exported
	}
	exported.Path = path

	file, err := os.Create(path)
	if err != nil {
		exported.Error = fmt.Sprintf("failed to create file: %v", err)
		return exported
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"run_id":       em.RunID,
			"exported_at":  time.Now().UTC(),
			"analysis":     result.Name,
			"record_count": result.RowCount,
		},
		"data": result,
	}
	if err := encoder.Encode(exportData); err != nil {
		exported.Error = fmt.Sprintf("failed to encode JSON: %v", err)
		return exported
	}

	exported.RecordCount = result.RowCount
	exported.Success = true
	return exported
}
