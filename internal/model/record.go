package model

// Canonical column names of the product sustainability dataset.
// Input files must carry exactly these headers.
const (
	ColID                   = "id"
	ColProductType          = "product_type"
	ColRawMaterialUsageKg   = "raw_material_usage_kg"
	ColEnergyConsumptionKwh = "energy_consumption_kwh"
	ColWasteGeneratedKg     = "waste_generated_kg"
	ColTransportDistanceKm  = "transport_distance_km"
	ColCO2EmissionsKg       = "co2_emissions_kg"
	ColRenewableEnergyPct   = "renewable_energy_percentage"
	ColCostUSD              = "cost_usd"
	ColDeliveryTimeDays     = "delivery_time_days"
	ColSustainabilityScore  = "sustainability_score"
)

// Columns lists the canonical column names in dataset order.
var Columns = []string{
	ColID,
	ColProductType,
	ColRawMaterialUsageKg,
	ColEnergyConsumptionKwh,
	ColWasteGeneratedKg,
	ColTransportDistanceKm,
	ColCO2EmissionsKg,
	ColRenewableEnergyPct,
	ColCostUSD,
	ColDeliveryTimeDays,
	ColSustainabilityScore,
}

// ProductRecord represents a single manufactured product row.
// ID is unique and positive and defines the total order used by
// windowing and chaining.
type ProductRecord struct {
	ID                   int     `json:"id"`
	ProductType          string  `json:"product_type"`
	RawMaterialUsageKg   float64 `json:"raw_material_usage_kg"`
	EnergyConsumptionKwh float64 `json:"energy_consumption_kwh"`
	WasteGeneratedKg     float64 `json:"waste_generated_kg"`
	TransportDistanceKm  float64 `json:"transport_distance_km"`
	CO2EmissionsKg       float64 `json:"co2_emissions_kg"`
	RenewableEnergyPct   float64 `json:"renewable_energy_percentage"`
	CostUSD              float64 `json:"cost_usd"`
	DeliveryTimeDays     float64 `json:"delivery_time_days"`
	SustainabilityScore  float64 `json:"sustainability_score"`
}

// Dataset is the immutable ordered sequence of product records a report
// run operates on. Engines read it, never write it.
type Dataset []ProductRecord
