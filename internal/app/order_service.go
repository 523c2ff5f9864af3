package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// OrderServiceImpl implements the OrderService interface.
type OrderServiceImpl struct {
	orders    secondary.OrderRepository
	inventory secondary.InventoryRepository
	audit     secondary.LogWriter
	mu        *sync.Mutex
}

// NewOrderService creates a new OrderService with injected dependencies.
func NewOrderService(orders secondary.OrderRepository, inventory secondary.InventoryRepository, audit secondary.LogWriter, mu *sync.Mutex) *OrderServiceImpl {
	return &OrderServiceImpl{
		orders:    orders,
		inventory: inventory,
		audit:     audit,
		mu:        mu,
	}
}

// RegisterOrder records a new pending order.
func (s *OrderServiceImpl) RegisterOrder(ctx context.Context, req primary.RegisterOrderRequest) (*primary.RegisterOrderResponse, error) {
	invoice := strings.ReplaceAll(req.Invoice, " ", "")
	if invoice == "" {
		return nil, faults.Validationf("invoice number must not be empty")
	}
	beer, err := models.ParseBeerType(req.BeerType)
	if err != nil {
		return nil, &faults.ValidationError{Msg: err.Error()}
	}
	if req.Quantity <= 0 {
		return nil, faults.Validationf("order quantity must be a positive number of bottles, got %d", req.Quantity)
	}
	if req.Customer == "" {
		return nil, faults.Validationf("customer name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.orders.Exists(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}
	if exists {
		return nil, faults.Validationf("invoice number %s is already in use", invoice)
	}

	record := &secondary.OrderRecord{
		Invoice:      invoice,
		Customer:     req.Customer,
		DateRequired: req.DateRequired,
		BeerType:     beer,
		Quantity:     req.Quantity,
	}
	if err := s.orders.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to register order: %w", err)
	}

	s.audit.LogCreate(ctx, "order", invoice)
	return &primary.RegisterOrderResponse{Order: toOrderView(record)}, nil
}

// DispatchOrder marks an order dispatched and debits the ledger. The stock
// check and the debit run under the aggregate lock and in one repository
// transaction, so a failed dispatch leaves order and inventory untouched.
func (s *OrderServiceImpl) DispatchOrder(ctx context.Context, invoice string) (*primary.DispatchOrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.orders.GetByInvoice(ctx, invoice)
	if err != nil {
		return nil, err
	}
	if record.Dispatched {
		return nil, faults.Statef("order %s has already been dispatched", invoice)
	}

	if err := s.orders.Dispatch(ctx, record); err != nil {
		return nil, err
	}
	record.Dispatched = true

	remaining, err := s.inventory.Level(ctx, record.BeerType)
	if err != nil {
		return nil, fmt.Errorf("failed to read remaining stock: %w", err)
	}

	s.audit.LogUpdate(ctx, "order", invoice, "dispatched", "pending", "dispatched")
	s.audit.LogUpdate(ctx, "inventory", string(record.BeerType), "debit", "", strconv.Itoa(record.Quantity))

	return &primary.DispatchOrderResponse{Order: toOrderView(record), RemainingStock: remaining}, nil
}

// DeleteOrder removes an order if present.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, invoice string) (*primary.DeleteOrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.orders.Delete(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	if found {
		s.audit.LogDelete(ctx, "order", invoice)
	}
	return &primary.DeleteOrderResponse{Found: found}, nil
}

// GetOrder retrieves an order by invoice number.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, invoice string) (*primary.Order, error) {
	record, err := s.orders.GetByInvoice(ctx, invoice)
	if err != nil {
		return nil, err
	}
	return toOrderView(record), nil
}

// ListOrders lists all orders.
func (s *OrderServiceImpl) ListOrders(ctx context.Context) ([]*primary.Order, error) {
	records, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]*primary.Order, len(records))
	for i, r := range records {
		orders[i] = toOrderView(r)
	}
	return orders, nil
}

func toOrderView(r *secondary.OrderRecord) *primary.Order {
	return &primary.Order{
		Invoice:      r.Invoice,
		Customer:     r.Customer,
		DateRequired: r.DateRequired,
		BeerType:     r.BeerType,
		Quantity:     r.Quantity,
		Dispatched:   r.Dispatched,
		CreatedAt:    r.CreatedAt,
	}
}
