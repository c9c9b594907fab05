package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-sustainability-analytics/internal/model"
)

var db *sql.DB

// InitDB opens the SQLite results database and creates its tables.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// Create tables if not exists
	runTable := `
	CREATE TABLE IF NOT EXISTS report_runs (
		id TEXT PRIMARY KEY,
		source TEXT,
		status TEXT,
		record_count INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	resultTable := `
	CREATE TABLE IF NOT EXISTS analysis_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		analysis TEXT,
		row_count INTEGER,
		payload TEXT,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(runTable); err != nil {
		return err
	}
	if _, err := db.Exec(resultTable); err != nil {
		return err
	}

	return nil
}

// SaveRun stores a new report run.
func SaveRun(runID, source string, recordCount int) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO report_runs (id, source, status, record_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, source, "running", recordCount, now, now)
	return err
}

// UpdateRunStatus updates a run's status.
func UpdateRunStatus(runID, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE report_runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveAnalysisResult stores one analysis result as a JSON payload.
func SaveAnalysisResult(runID string, result model.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO analysis_results (run_id, analysis, row_count, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, result.Name, result.RowCount, payload, now)
	return err
}

// ListRuns returns all report runs with basic info.
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, source, status, record_count, created_at, updated_at FROM report_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, source, status string
		var recordCount int
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &source, &status, &recordCount, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":          id,
			"source":      source,
			"status":      status,
			"recordCount": recordCount,
			"createdAt":   createdAt,
			"updatedAt":   updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRunResults fetches the stored analysis results for a run.
func GetRunResults(runID string) ([]model.AnalysisResult, error) {
	rows, err := db.Query(`SELECT payload FROM analysis_results WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.AnalysisResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var result model.AnalysisResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
