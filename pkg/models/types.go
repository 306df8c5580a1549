package models

import "time"

// Reliability tiers for suppliers.
const (
	ReliabilityHigh   = "High"
	ReliabilityMedium = "Medium"
	ReliabilityLow    = "Low"
)

// Risk factors for logistics routes.
const (
	RiskTraffic = "Traffic"
	RiskWeather = "Weather"
	RiskNone    = "None"
)

// Activity log severities.
const (
	SeverityInfo  = "info"
	SeverityWarn  = "warn"
	SeverityError = "error"
)

// SalesRecord represents one day of demand for a product.
type SalesRecord struct {
	Date      string `json:"date"`
	Product   string `json:"product"`
	UnitsSold int    `json:"unitsSold"`
}

// InventoryRecord represents the current stock position for a product.
// There is a single record per product; the simulation mutates it in place.
type InventoryRecord struct {
	Product      string `json:"product"`
	CurrentStock int    `json:"currentStock"`
	Warehouse    string `json:"warehouse"`
	SafetyStock  int    `json:"safetyStock"`
}

// SupplierRecord represents one supplier option for a product. Static data.
type SupplierRecord struct {
	SupplierName string  `json:"supplierName"`
	Product      string  `json:"product"`
	CostPerUnit  float64 `json:"costPerUnit"`
	Reliability  string  `json:"reliability"`
	LeadTimeDays int     `json:"leadTimeDays"`
}

// LogisticsRecord represents one delivery route. Only the risk factor is
// ever mutated.
type LogisticsRecord struct {
	Route               string `json:"route"`
	DistanceKm          int    `json:"distanceKm"`
	AvgDeliveryTimeDays int    `json:"avgDeliveryTimeDays"`
	RiskFactor          string `json:"riskFactor"`
}

// ActivityLogEntry is one line of the live feed, newest first.
type ActivityLogEntry struct {
	Time     string `json:"time"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ChatMessage is one turn of the advisor conversation.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is a read-only copy of the full supply-chain state handed to the
// advisor and to dashboard clients.
type Snapshot struct {
	Sales       []SalesRecord     `json:"sales"`
	Inventory   []InventoryRecord `json:"inventory"`
	Suppliers   []SupplierRecord  `json:"suppliers"`
	Logistics   []LogisticsRecord `json:"logistics"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Urgent reports whether the primary product is below its safety stock.
func (s Snapshot) Urgent() bool {
	for _, inv := range s.Inventory {
		if inv.CurrentStock < inv.SafetyStock {
			return true
		}
	}
	return false
}

// --- AI Gateway response schemas ---

// Forecast is the predicted demand part of a system summary.
type Forecast struct {
	Number      float64 `json:"number"`
	Explanation string  `json:"explanation"`
}

// RiskAssessment is the stockout risk part of a system summary.
type RiskAssessment struct {
	Level       string `json:"level"`
	Days        int    `json:"days"`
	Explanation string `json:"explanation"`
}

// ProcurementPlan is the recommended order part of a system summary.
type ProcurementPlan struct {
	Units    int    `json:"units"`
	Supplier string `json:"supplier"`
	Reason   string `json:"reason"`
	Timing   string `json:"timing"`
}

// LogisticsAdvice is the routing part of a system summary.
type LogisticsAdvice struct {
	Route  string `json:"route"`
	Delays string `json:"delays"`
	Advice string `json:"advice"`
}

// SystemSummary is the strict four-key JSON object returned by the
// structured summary call.
type SystemSummary struct {
	Forecast    Forecast        `json:"forecast"`
	Risk        RiskAssessment  `json:"risk"`
	Procurement ProcurementPlan `json:"procurement"`
	Logistics   LogisticsAdvice `json:"logistics"`
}

// SupplierScore is one ranked entry of a supplier comparison.
type SupplierScore struct {
	Name  string   `json:"name"`
	Score int      `json:"score"` // 0-100
	Pros  []string `json:"pros"`
	Cons  []string `json:"cons"`
	Rank  int      `json:"rank"` // 1 is best
}

// ComparisonWinner is the declared best supplier with reasoning.
type ComparisonWinner struct {
	Name      string `json:"name"`
	Reasoning string `json:"reasoning"`
}

// SupplierComparison is the structured result of the comparison call.
type SupplierComparison struct {
	Comparison    []SupplierScore  `json:"comparison"`
	Winner        ComparisonWinner `json:"winner"`
	UrgencyAdvice string           `json:"urgencyAdvice"`
}

// GroundingSource is one citation attached to a narrative answer.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}
