package primary

import (
	"context"
	"time"

	"github.com/example/brewtrack/internal/models"
)

// OrderService defines the primary port for customer order operations.
type OrderService interface {
	// RegisterOrder records a new pending order.
	RegisterOrder(ctx context.Context, req RegisterOrderRequest) (*RegisterOrderResponse, error)

	// DispatchOrder marks an order dispatched and debits the bottle
	// ledger. Stock and status change together or not at all.
	DispatchOrder(ctx context.Context, invoice string) (*DispatchOrderResponse, error)

	// DeleteOrder removes an order. Deleting an unknown invoice is a
	// no-op; the response reports whether anything was removed.
	DeleteOrder(ctx context.Context, invoice string) (*DeleteOrderResponse, error)

	// GetOrder retrieves an order by invoice number.
	GetOrder(ctx context.Context, invoice string) (*Order, error)

	// ListOrders lists all orders.
	ListOrders(ctx context.Context) ([]*Order, error)
}

// RegisterOrderRequest contains parameters for registering an order.
type RegisterOrderRequest struct {
	Invoice      string
	Customer     string
	DateRequired time.Time
	BeerType     string
	Quantity     int // bottles
}

// RegisterOrderResponse contains the result of registering an order.
type RegisterOrderResponse struct {
	Order *Order
}

// DispatchOrderResponse contains the order after dispatch and the stock
// remaining for its beer type.
type DispatchOrderResponse struct {
	Order          *Order
	RemainingStock int
}

// DeleteOrderResponse reports whether the invoice existed.
type DeleteOrderResponse struct {
	Found bool
}

// Order represents a customer order at the port boundary.
type Order struct {
	Invoice      string
	Customer     string
	DateRequired time.Time
	BeerType     models.BeerType
	Quantity     int
	Dispatched   bool
	CreatedAt    time.Time
}
