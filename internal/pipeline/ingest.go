package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go-sustainability-analytics/internal/model"
)

// ------------------- Ingestion -------------------

// LoadDataset reads the full product dataset from a CSV file or URL.
// The table is materialized completely before any analysis runs, so this
// is a plain synchronous read — no streaming, no workers.
func LoadDataset(pathOrURL string) (model.Dataset, error) {
	fmt.Printf("➡️ Loading dataset from: %s\n", pathOrURL)

	var reader io.Reader
	if strings.HasPrefix(pathOrURL, "http") {
		resp, err := http.Get(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to GET CSV: %w", err)
		}
		defer resp.Body.Close()
		reader = resp.Body
	} else {
		file, err := os.Open(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	dataset, err := ReadCSV(reader)
	if err != nil {
		return nil, err
	}

	fmt.Printf("📄 CSV ingestion done: %d records read from %s\n", len(dataset), pathOrURL)
	return dataset, nil
}

// ReadCSV parses product records from CSV data with a header row.
// Headers must match the canonical column names exactly (after trimming
// whitespace and quotes); missing columns are schema errors.
func ReadCSV(r io.Reader) (model.Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Map canonical column name → position
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		cleanHeader := strings.TrimSpace(h)
		cleanHeader = strings.ReplaceAll(cleanHeader, `"`, "")
		positions[strings.ToLower(cleanHeader)] = i
	}
	for _, col := range model.Columns {
		if _, ok := positions[col]; !ok {
			return nil, &model.SchemaError{Column: col, Reason: "column missing from header"}
		}
	}

	var dataset model.Dataset
	line := 1
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error at line %d: %w", line+1, err)
		}
		line++

		record, err := parseRecord(row, positions)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		dataset = append(dataset, record)

		if len(dataset)%500 == 0 {
			fmt.Printf("📄 CSV: Processed %d records\n", len(dataset))
		}
	}

	return dataset, nil
}

// parseRecord converts one CSV row into a typed ProductRecord.
func parseRecord(row []string, positions map[string]int) (model.ProductRecord, error) {
	var rec model.ProductRecord

	id, err := parseIntField(row, positions, model.ColID)
	if err != nil {
		return rec, err
	}
	rec.ID = id
	rec.ProductType = strings.TrimSpace(row[positions[model.ColProductType]])

	floatFields := []struct {
		column string
		target *float64
	}{
		{model.ColRawMaterialUsageKg, &rec.RawMaterialUsageKg},
		{model.ColEnergyConsumptionKwh, &rec.EnergyConsumptionKwh},
		{model.ColWasteGeneratedKg, &rec.WasteGeneratedKg},
		{model.ColTransportDistanceKm, &rec.TransportDistanceKm},
		{model.ColCO2EmissionsKg, &rec.CO2EmissionsKg},
		{model.ColRenewableEnergyPct, &rec.RenewableEnergyPct},
		{model.ColCostUSD, &rec.CostUSD},
		{model.ColDeliveryTimeDays, &rec.DeliveryTimeDays},
		{model.ColSustainabilityScore, &rec.SustainabilityScore},
	}
	for _, f := range floatFields {
		v, err := parseFloatField(row, positions, f.column)
		if err != nil {
			return rec, err
		}
		*f.target = v
	}

	return rec, nil
}

func parseIntField(row []string, positions map[string]int, column string) (int, error) {
	pos := positions[column]
	if pos >= len(row) {
		return 0, &model.SchemaError{Column: column, Reason: "row has too few fields"}
	}
	v, err := strconv.Atoi(strings.TrimSpace(row[pos]))
	if err != nil {
		return 0, &model.SchemaError{Column: column, Reason: fmt.Sprintf("not an integer: %q", row[pos])}
	}
	return v, nil
}

func parseFloatField(row []string, positions map[string]int, column string) (float64, error) {
	pos := positions[column]
	if pos >= len(row) {
		return 0, &model.SchemaError{Column: column, Reason: "row has too few fields"}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[pos]), 64)
	if err != nil {
		return 0, &model.SchemaError{Column: column, Reason: fmt.Sprintf("not numeric: %q", row[pos])}
	}
	return v, nil
}
