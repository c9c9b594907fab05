package model

// AnalysisResult represents the output of a single named analysis:
// an ordered sequence of rows with named columns, ready for rendering
// as a table or serializing to CSV/JSON.
type AnalysisResult struct {
	Name     string     `json:"name"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
}
