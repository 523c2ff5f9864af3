// Package wire provides dependency injection for the brewtrack application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/brewtrack/internal/adapters/csvsales"
	"github.com/example/brewtrack/internal/adapters/forecast"
	"github.com/example/brewtrack/internal/adapters/persistence"
	"github.com/example/brewtrack/internal/adapters/sqlite"
	"github.com/example/brewtrack/internal/app"
	"github.com/example/brewtrack/internal/db"
	"github.com/example/brewtrack/internal/ports/primary"
)

var (
	batchService     primary.BatchService
	orderService     primary.OrderService
	inventoryService primary.InventoryService
	tankService      primary.TankService
	plannerService   primary.PlannerService
	forecastService  primary.ForecastService
	stateService     primary.StateService
	auditService     primary.AuditService
	once             sync.Once
)

// BatchService returns the singleton BatchService instance.
func BatchService() primary.BatchService {
	once.Do(initServices)
	return batchService
}

// OrderService returns the singleton OrderService instance.
func OrderService() primary.OrderService {
	once.Do(initServices)
	return orderService
}

// InventoryService returns the singleton InventoryService instance.
func InventoryService() primary.InventoryService {
	once.Do(initServices)
	return inventoryService
}

// TankService returns the singleton TankService instance.
func TankService() primary.TankService {
	once.Do(initServices)
	return tankService
}

// PlannerService returns the singleton PlannerService instance.
func PlannerService() primary.PlannerService {
	once.Do(initServices)
	return plannerService
}

// ForecastService returns the singleton ForecastService instance.
func ForecastService() primary.ForecastService {
	once.Do(initServices)
	return forecastService
}

// StateService returns the singleton StateService instance.
func StateService() primary.StateService {
	once.Do(initServices)
	return stateService
}

// AuditService returns the singleton AuditService instance.
func AuditService() primary.AuditService {
	once.Do(initServices)
	return auditService
}

// SnapshotStore returns a file-based snapshot store. Stores are stateless,
// so each call creates a new one.
func SnapshotStore() primary.SnapshotStore {
	return persistence.NewFileSnapshotStore()
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) with injected DB
	batchRepo := sqlite.NewBatchRepository(database)
	orderRepo := sqlite.NewOrderRepository(database)
	inventoryRepo := sqlite.NewInventoryRepository(database)
	forecastRepo := sqlite.NewForecastRepository(database)
	auditRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	// All services share one mutex so every mutation of the brewery state
	// is serialized process-wide
	mu := &sync.Mutex{}

	// Create services (primary ports implementation)
	batchService = app.NewBatchService(batchRepo, logWriter, mu)
	orderService = app.NewOrderService(orderRepo, inventoryRepo, logWriter, mu)
	inventoryService = app.NewInventoryService(inventoryRepo)
	tankService = app.NewTankService(batchRepo)
	plannerService = app.NewPlannerService(batchRepo, inventoryRepo, forecastRepo, mu)
	forecastService = app.NewForecastService(csvsales.NewLoader(), forecast.NewSeasonalModel(), forecastRepo, logWriter, mu)
	stateService = app.NewStateService(batchRepo, orderRepo, inventoryRepo, forecastRepo, logWriter, mu)
	auditService = app.NewAuditService(auditRepo)
}
