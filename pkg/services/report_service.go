package services

import (
	"fmt"

	"chainmind-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// ReportService renders the current snapshot as a downloadable Excel
// workbook, one sheet per state slice.
type ReportService struct{}

// NewReportService creates a new ReportService.
func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildWorkbook writes the snapshot and activity feed into a workbook. The
// caller owns the returned file and must Close it.
func (rs *ReportService) BuildWorkbook(snap models.Snapshot, activity []models.ActivityLogEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := rs.writeSales(f, snap.Sales); err != nil {
		f.Close()
		return nil, err
	}
	if err := rs.writeInventory(f, snap.Inventory); err != nil {
		f.Close()
		return nil, err
	}
	if err := rs.writeSuppliers(f, snap.Suppliers); err != nil {
		f.Close()
		return nil, err
	}
	if err := rs.writeLogistics(f, snap.Logistics); err != nil {
		f.Close()
		return nil, err
	}
	if err := rs.writeActivity(f, activity); err != nil {
		f.Close()
		return nil, err
	}

	// excelize starts every workbook with "Sheet1"; replace it with the
	// sales sheet as the default view.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Sales"); err == nil {
		f.SetActiveSheet(idx)
	}

	return f, nil
}

func (rs *ReportService) writeSales(f *excelize.File, sales []models.SalesRecord) error {
	if _, err := f.NewSheet("Sales"); err != nil {
		return fmt.Errorf("failed to create Sales sheet: %w", err)
	}
	if err := f.SetSheetRow("Sales", "A1", &[]interface{}{"Date", "Product", "Units Sold"}); err != nil {
		return err
	}
	for i, rec := range sales {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Sales", cell, &[]interface{}{rec.Date, rec.Product, rec.UnitsSold}); err != nil {
			return err
		}
	}
	return nil
}

func (rs *ReportService) writeInventory(f *excelize.File, inventory []models.InventoryRecord) error {
	if _, err := f.NewSheet("Inventory"); err != nil {
		return fmt.Errorf("failed to create Inventory sheet: %w", err)
	}
	if err := f.SetSheetRow("Inventory", "A1", &[]interface{}{"Product", "Current Stock", "Warehouse", "Safety Stock"}); err != nil {
		return err
	}
	for i, rec := range inventory {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Inventory", cell, &[]interface{}{rec.Product, rec.CurrentStock, rec.Warehouse, rec.SafetyStock}); err != nil {
			return err
		}
	}
	return nil
}

func (rs *ReportService) writeSuppliers(f *excelize.File, suppliers []models.SupplierRecord) error {
	if _, err := f.NewSheet("Suppliers"); err != nil {
		return fmt.Errorf("failed to create Suppliers sheet: %w", err)
	}
	if err := f.SetSheetRow("Suppliers", "A1", &[]interface{}{"Supplier", "Product", "Cost Per Unit", "Reliability", "Lead Time (Days)"}); err != nil {
		return err
	}
	for i, rec := range suppliers {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Suppliers", cell, &[]interface{}{rec.SupplierName, rec.Product, rec.CostPerUnit, rec.Reliability, rec.LeadTimeDays}); err != nil {
			return err
		}
	}
	return nil
}

func (rs *ReportService) writeLogistics(f *excelize.File, logistics []models.LogisticsRecord) error {
	if _, err := f.NewSheet("Logistics"); err != nil {
		return fmt.Errorf("failed to create Logistics sheet: %w", err)
	}
	if err := f.SetSheetRow("Logistics", "A1", &[]interface{}{"Route", "Distance (km)", "Avg Delivery (Days)", "Risk Factor"}); err != nil {
		return err
	}
	for i, rec := range logistics {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Logistics", cell, &[]interface{}{rec.Route, rec.DistanceKm, rec.AvgDeliveryTimeDays, rec.RiskFactor}); err != nil {
			return err
		}
	}
	return nil
}

func (rs *ReportService) writeActivity(f *excelize.File, activity []models.ActivityLogEntry) error {
	if _, err := f.NewSheet("Activity"); err != nil {
		return fmt.Errorf("failed to create Activity sheet: %w", err)
	}
	if err := f.SetSheetRow("Activity", "A1", &[]interface{}{"Time", "Severity", "Message"}); err != nil {
		return err
	}
	for i, entry := range activity {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Activity", cell, &[]interface{}{entry.Time, entry.Severity, entry.Message}); err != nil {
			return err
		}
	}
	return nil
}
