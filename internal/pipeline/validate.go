package pipeline

import (
	"fmt"

	"go-sustainability-analytics/internal/model"
)

// ValidateDataset checks every record against the dataset schema rules:
// positive unique IDs, non-empty product type, non-negative measures and
// [0,100] bounds on percentage and score. The first violation is fatal.
func ValidateDataset(dataset model.Dataset) error {
	seen := make(map[int]bool, len(dataset))

	for _, rec := range dataset {
		if err := validateRecord(rec); err != nil {
			fmt.Printf("❌ Validation: Invalid record id=%d - %v\n", rec.ID, err)
			return err
		}
		if seen[rec.ID] {
			return &model.SchemaError{Column: model.ColID, Reason: fmt.Sprintf("duplicate id: %d", rec.ID)}
		}
		seen[rec.ID] = true
	}

	fmt.Printf("🔍 Validation Summary: %d valid records, 0 invalid records\n", len(dataset))
	return nil
}

// validateRecord applies schema rules to a single record.
func validateRecord(rec model.ProductRecord) error {
	if rec.ID <= 0 {
		return &model.SchemaError{Column: model.ColID, Reason: fmt.Sprintf("must be positive, got %d", rec.ID)}
	}
	if rec.ProductType == "" {
		return &model.SchemaError{Column: model.ColProductType, Reason: "must not be empty"}
	}

	nonNegative := []struct {
		column string
		value  float64
	}{
		{model.ColRawMaterialUsageKg, rec.RawMaterialUsageKg},
		{model.ColEnergyConsumptionKwh, rec.EnergyConsumptionKwh},
		{model.ColWasteGeneratedKg, rec.WasteGeneratedKg},
		{model.ColTransportDistanceKm, rec.TransportDistanceKm},
		{model.ColCO2EmissionsKg, rec.CO2EmissionsKg},
		{model.ColCostUSD, rec.CostUSD},
		{model.ColDeliveryTimeDays, rec.DeliveryTimeDays},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return &model.SchemaError{Column: f.column, Reason: fmt.Sprintf("must be non-negative, got %v", f.value)}
		}
	}

	bounded := []struct {
		column string
		value  float64
	}{
		{model.ColRenewableEnergyPct, rec.RenewableEnergyPct},
		{model.ColSustainabilityScore, rec.SustainabilityScore},
	}
	for _, f := range bounded {
		if f.value < 0 || f.value > 100 {
			return &model.SchemaError{Column: f.column, Reason: fmt.Sprintf("must be within [0,100], got %v", f.value)}
		}
	}

	return nil
}
