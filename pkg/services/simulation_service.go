package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	config "chainmind-api/configs"
	"chainmind-api/pkg/models"
)

// SimulationService owns the live supply-chain state and advances it on a
// fixed interval or on demand. All reads go through Snapshot/ActivityLog,
// which return copies; the ticker goroutine and request handlers never
// share slices.
type SimulationService struct {
	mu sync.RWMutex

	sales     []models.SalesRecord
	inventory []models.InventoryRecord
	suppliers []models.SupplierRecord
	logistics []models.LogisticsRecord
	activity  []models.ActivityLogEntry

	rng      *rand.Rand
	interval time.Duration
	divisor  int
	logCap   int
}

// NewSimulationService seeds the state from the demo fixtures. The random
// source is injected so tests can run deterministically.
func NewSimulationService(cfg *config.Config, rng *rand.Rand) *SimulationService {
	sales := seedSales()
	if cfg.SalesWindow > 0 && cfg.SalesWindow < len(sales) {
		sales = sales[len(sales)-cfg.SalesWindow:]
	}

	return &SimulationService{
		sales:     sales,
		inventory: seedInventory(),
		suppliers: seedSuppliers(),
		logistics: seedLogistics(),
		rng:       rng,
		interval:  cfg.TickInterval,
		divisor:   cfg.StockDivisor,
		logCap:    cfg.ActivityLogCap,
	}
}

// Run advances the simulation on the configured interval until the context
// is cancelled.
func (s *SimulationService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Simulation ticker started (interval: %s)", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Simulation ticker stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick performs one normal simulation step and returns the activity entry
// it produced.
func (s *SimulationService) Tick() models.ActivityLogEntry {
	return s.step(false, "")
}

// TriggerIncident performs one incident step: demand doubles and the
// resulting entry carries error severity and the incident label.
func (s *SimulationService) TriggerIncident(label string) models.ActivityLogEntry {
	return s.step(true, label)
}

func (s *SimulationService) step(incident bool, label string) models.ActivityLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.sales[len(s.sales)-1]

	var newDemand int
	if incident {
		newDemand = last.UnitsSold * 2
	} else {
		newDemand = int(float64(last.UnitsSold) * (1 + s.rng.Float64()*0.05))
	}

	entry := models.SalesRecord{
		Date:      time.Now().Format("2006-01-02"),
		Product:   last.Product,
		UnitsSold: newDemand,
	}
	// One append, one eviction: the window length is invariant.
	s.sales = append(s.sales[1:], entry)

	inv := &s.inventory[0]
	inv.CurrentStock -= newDemand / s.divisor
	if inv.CurrentStock < 0 {
		inv.CurrentStock = 0
	}

	if s.rng.Float64() < 0.3 {
		risks := []string{models.RiskTraffic, models.RiskWeather, models.RiskNone}
		s.logistics[s.rng.Intn(len(s.logistics))].RiskFactor = risks[s.rng.Intn(len(risks))]
	}

	severity := models.SeverityInfo
	message := fmt.Sprintf("Market Check: %d units demanded. Stock: %d", newDemand, inv.CurrentStock)
	switch {
	case incident:
		severity = models.SeverityError
		message = fmt.Sprintf("Incident: %s. Demand spiked to %d units. Stock: %d", label, newDemand, inv.CurrentStock)
	case inv.CurrentStock < inv.SafetyStock:
		severity = models.SeverityWarn
	}

	logEntry := models.ActivityLogEntry{
		Time:     time.Now().Format("15:04:05"),
		Message:  message,
		Severity: severity,
	}
	s.activity = append([]models.ActivityLogEntry{logEntry}, s.activity...)
	if len(s.activity) > s.logCap {
		s.activity = s.activity[:s.logCap]
	}

	return logEntry
}

// Snapshot returns a deep copy of the current supply-chain state.
func (s *SimulationService) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Sales:       append([]models.SalesRecord(nil), s.sales...),
		Inventory:   append([]models.InventoryRecord(nil), s.inventory...),
		Suppliers:   append([]models.SupplierRecord(nil), s.suppliers...),
		Logistics:   append([]models.LogisticsRecord(nil), s.logistics...),
		GeneratedAt: time.Now(),
	}
}

// ActivityLog returns a copy of the activity feed, newest first.
func (s *SimulationService) ActivityLog() []models.ActivityLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ActivityLogEntry(nil), s.activity...)
}
