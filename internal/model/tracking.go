package model

import (
	"sync"
	"time"
)

// AnalysisMetrics represents metrics for a single analysis within a run
type AnalysisMetrics struct {
	Name       string        `json:"name"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	Duration   time.Duration `json:"duration"`
	RowCount   int           `json:"row_count"`
	ErrorCount int           `json:"error_count"`
}

// ReportTracker manages execution tracking and metrics for one report run.
// Analyses run concurrently, so all updates go through the mutex.
type ReportTracker struct {
	RunID           string                     `json:"run_id"`
	StartTime       time.Time                  `json:"start_time"`
	EndTime         time.Time                  `json:"end_time"`
	Status          string                     `json:"status"`
	RecordCount     int                        `json:"record_count"`
	AnalysisMetrics map[string]AnalysisMetrics `json:"analysis_metrics"`
	Mutex           sync.RWMutex               `json:"-"`
}

// NewReportTracker creates a tracker for a report run.
func NewReportTracker(runID string, recordCount int) *ReportTracker {
	return &ReportTracker{
		RunID:           runID,
		StartTime:       time.Now(),
		Status:          "running",
		RecordCount:     recordCount,
		AnalysisMetrics: make(map[string]AnalysisMetrics),
	}
}

// RecordAnalysis stores timing and row-count metrics for one analysis.
func (t *ReportTracker) RecordAnalysis(name string, start, end time.Time, rowCount, errorCount int) {
	t.Mutex.Lock()
	defer t.Mutex.Unlock()

	t.AnalysisMetrics[name] = AnalysisMetrics{
		Name:       name,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		RowCount:   rowCount,
		ErrorCount: errorCount,
	}
}

// Finish marks the run complete and records the end time.
func (t *ReportTracker) Finish(status string) {
	t.Mutex.Lock()
	defer t.Mutex.Unlock()

	t.EndTime = time.Now()
	t.Status = status
}

// TotalDuration returns the wall-clock duration of the run so far.
func (t *ReportTracker) TotalDuration() time.Duration {
	t.Mutex.RLock()
	defer t.Mutex.RUnlock()

	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}
