package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
)

func newOrderFixture() (*OrderServiceImpl, *mockOrderRepository, *mockInventoryRepository) {
	inv := newMockInventoryRepository()
	repo := newMockOrderRepository(inv)
	svc := NewOrderService(repo, inv, nopLogWriter{}, &sync.Mutex{})
	return svc, repo, inv
}

func registerOrder(t *testing.T, svc *OrderServiceImpl, invoice, beer string, quantity int) {
	t.Helper()
	_, err := svc.RegisterOrder(context.Background(), primary.RegisterOrderRequest{
		Invoice:      invoice,
		Customer:     "The Crown & Anchor",
		DateRequired: time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC),
		BeerType:     beer,
		Quantity:     quantity,
	})
	if err != nil {
		t.Fatalf("RegisterOrder(%s) failed: %v", invoice, err)
	}
}

func TestRegisterOrderValidation(t *testing.T) {
	svc, _, _ := newOrderFixture()
	ctx := context.Background()

	cases := []primary.RegisterOrderRequest{
		{Invoice: "", Customer: "c", BeerType: "dunkel", Quantity: 10},
		{Invoice: "   ", Customer: "c", BeerType: "dunkel", Quantity: 10},
		{Invoice: "1001", Customer: "c", BeerType: "lager", Quantity: 10},
		{Invoice: "1001", Customer: "c", BeerType: "dunkel", Quantity: 0},
		{Invoice: "1001", Customer: "", BeerType: "dunkel", Quantity: 10},
	}
	for _, req := range cases {
		_, err := svc.RegisterOrder(ctx, req)
		var ve *faults.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("RegisterOrder(%+v): expected ValidationError, got %v", req, err)
		}
	}
}

func TestRegisterOrderStripsBlanksFromInvoice(t *testing.T) {
	svc, repo, _ := newOrderFixture()
	registerOrder(t, svc, " 10 01 ", "pilsner", 20)
	if _, ok := repo.orders["1001"]; !ok {
		t.Errorf("expected invoice stored as 1001, have %v", repo.orders)
	}
}

func TestRegisterOrderDuplicateInvoice(t *testing.T) {
	svc, _, _ := newOrderFixture()
	registerOrder(t, svc, "1001", "pilsner", 20)

	_, err := svc.RegisterOrder(context.Background(), primary.RegisterOrderRequest{
		Invoice: "1001", Customer: "Other", DateRequired: time.Now(), BeerType: "dunkel", Quantity: 5,
	})
	var ve *faults.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDispatchOrderDebitsInventory(t *testing.T) {
	svc, _, inv := newOrderFixture()
	inv.levels[models.BeerPilsner] = 100
	registerOrder(t, svc, "1001", "pilsner", 60)

	resp, err := svc.DispatchOrder(context.Background(), "1001")
	if err != nil {
		t.Fatalf("DispatchOrder failed: %v", err)
	}
	if !resp.Order.Dispatched {
		t.Error("expected order marked dispatched")
	}
	if resp.RemainingStock != 40 {
		t.Errorf("expected 40 bottles remaining, got %d", resp.RemainingStock)
	}
}

func TestDispatchOrderInsufficientStock(t *testing.T) {
	svc, repo, inv := newOrderFixture()
	inv.levels[models.BeerPilsner] = 40
	registerOrder(t, svc, "1001", "pilsner", 100)

	_, err := svc.DispatchOrder(context.Background(), "1001")
	var ise *faults.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if ise.Requested != 100 || ise.Available != 40 {
		t.Errorf("unexpected error detail: %+v", ise)
	}

	// All-or-nothing: stock and order status are both untouched.
	if inv.levels[models.BeerPilsner] != 40 {
		t.Errorf("inventory changed on failed dispatch: %d", inv.levels[models.BeerPilsner])
	}
	if repo.orders["1001"].Dispatched {
		t.Error("order marked dispatched despite failure")
	}
}

func TestDispatchOrderTwice(t *testing.T) {
	svc, _, inv := newOrderFixture()
	inv.levels[models.BeerDunkel] = 200
	registerOrder(t, svc, "1001", "dunkel", 50)

	if _, err := svc.DispatchOrder(context.Background(), "1001"); err != nil {
		t.Fatalf("first dispatch failed: %v", err)
	}
	_, err := svc.DispatchOrder(context.Background(), "1001")
	var se *faults.StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if inv.levels[models.BeerDunkel] != 150 {
		t.Errorf("double dispatch debited twice: %d", inv.levels[models.BeerDunkel])
	}
}

func TestDispatchOrderUnknownInvoice(t *testing.T) {
	svc, _, _ := newOrderFixture()
	_, err := svc.DispatchOrder(context.Background(), "9999")
	var nf *faults.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteOrder(t *testing.T) {
	svc, _, _ := newOrderFixture()
	registerOrder(t, svc, "1001", "red_helles", 10)

	resp, err := svc.DeleteOrder(context.Background(), "1001")
	if err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}
	if !resp.Found {
		t.Error("expected Found true")
	}

	// Deleting an unknown invoice is a notice, not an error.
	resp, err = svc.DeleteOrder(context.Background(), "1001")
	if err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}
	if resp.Found {
		t.Error("expected Found false for missing order")
	}
}
