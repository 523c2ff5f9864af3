package primary

import (
	"context"

	"github.com/example/brewtrack/internal/models"
)

// InventoryService defines the primary port for reading the bottle ledger.
// The ledger is only ever written through batch completion (credit) and
// order dispatch (debit); there is no direct mutation surface.
type InventoryService interface {
	// Level returns the bottle count for one beer type.
	Level(ctx context.Context, beerType string) (int, error)

	// Levels returns the bottle counts for all beer types.
	Levels(ctx context.Context) (map[models.BeerType]int, error)
}

// TankService defines the primary port for the tank overview.
type TankService interface {
	// ListTanks returns every tank with its live occupancy.
	ListTanks(ctx context.Context) ([]*TankStatus, error)
}

// TankStatus is one tank plus the batch currently holding it, if any.
type TankStatus struct {
	Name         string
	Capabilities []string
	Capacity     int
	HeldBy       string // batch ID, empty when free
}
