package services

import "chainmind-api/pkg/models"

// Seed fixtures for the demo supply chain. Every run starts from this
// state; the simulation mutates copies, never these slices.

func seedSales() []models.SalesRecord {
	return []models.SalesRecord{
		{Date: "2023-10-14", Product: "Shampoo", UnitsSold: 110},
		{Date: "2023-10-15", Product: "Shampoo", UnitsSold: 115},
		{Date: "2023-10-16", Product: "Shampoo", UnitsSold: 125},
		{Date: "2023-10-17", Product: "Shampoo", UnitsSold: 140},
		{Date: "2023-10-18", Product: "Shampoo", UnitsSold: 155},
		{Date: "2023-10-19", Product: "Shampoo", UnitsSold: 160},
		{Date: "2023-10-20", Product: "Shampoo", UnitsSold: 175},
		{Date: "2023-10-21", Product: "Shampoo", UnitsSold: 190},
		{Date: "2023-10-22", Product: "Shampoo", UnitsSold: 210},
		{Date: "2023-10-23", Product: "Shampoo", UnitsSold: 220},
		{Date: "2023-10-24", Product: "Shampoo", UnitsSold: 235},
		{Date: "2023-10-25", Product: "Shampoo", UnitsSold: 245},
		{Date: "2023-10-26", Product: "Shampoo", UnitsSold: 255},
		{Date: "2023-10-27", Product: "Shampoo", UnitsSold: 270},
	}
}

func seedInventory() []models.InventoryRecord {
	return []models.InventoryRecord{
		{Product: "Shampoo", CurrentStock: 850, Warehouse: "Mumbai_WH_01", SafetyStock: 300},
	}
}

func seedSuppliers() []models.SupplierRecord {
	return []models.SupplierRecord{
		{SupplierName: "Apex Chem-Tech", Product: "Shampoo", CostPerUnit: 120, Reliability: models.ReliabilityHigh, LeadTimeDays: 10},
		{SupplierName: "Local Fresh Supply", Product: "Shampoo", CostPerUnit: 145, Reliability: models.ReliabilityMedium, LeadTimeDays: 2},
	}
}

func seedLogistics() []models.LogisticsRecord {
	return []models.LogisticsRecord{
		{Route: "Western Highway", DistanceKm: 450, AvgDeliveryTimeDays: 1, RiskFactor: models.RiskTraffic},
		{Route: "Expressway Direct", DistanceKm: 420, AvgDeliveryTimeDays: 1, RiskFactor: models.RiskNone},
		{Route: "Coastal Road", DistanceKm: 500, AvgDeliveryTimeDays: 2, RiskFactor: models.RiskWeather},
	}
}
