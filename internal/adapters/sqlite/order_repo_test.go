package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/brewtrack/internal/adapters/sqlite"
	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
)

func TestOrderRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewOrderRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, testOrder("1001", models.BeerPilsner, 120)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByInvoice(ctx, "1001")
	if err != nil {
		t.Fatalf("GetByInvoice failed: %v", err)
	}
	if got.Customer != "Test Taphouse" || got.Quantity != 120 || got.Dispatched {
		t.Errorf("unexpected record: %+v", got)
	}

	exists, err := repo.Exists(ctx, "1001")
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v", exists, err)
	}

	var nf *faults.NotFoundError
	if _, err := repo.GetByInvoice(ctx, "9999"); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestOrderRepository_DispatchDebitsStock(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewOrderRepository(db)
	ctx := context.Background()

	setStock(t, db, models.BeerDunkel, 500)
	order := testOrder("2001", models.BeerDunkel, 200)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Dispatch(ctx, order); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if got := stockLevel(t, db, models.BeerDunkel); got != 300 {
		t.Errorf("stock = %d, want 300", got)
	}
	got, err := repo.GetByInvoice(ctx, "2001")
	if err != nil {
		t.Fatalf("GetByInvoice failed: %v", err)
	}
	if !got.Dispatched {
		t.Error("order not marked dispatched")
	}
}

func TestOrderRepository_DispatchInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewOrderRepository(db)
	ctx := context.Background()

	setStock(t, db, models.BeerDunkel, 40)
	order := testOrder("2002", models.BeerDunkel, 100)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := repo.Dispatch(ctx, order)
	var stock *faults.InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stock.BeerType != "dunkel" || stock.Requested != 100 || stock.Available != 40 {
		t.Errorf("error details = %+v", stock)
	}

	// Whole transaction rolled back: stock untouched, order still pending
	if got := stockLevel(t, db, models.BeerDunkel); got != 40 {
		t.Errorf("stock = %d, want 40", got)
	}
	got, _ := repo.GetByInvoice(ctx, "2002")
	if got.Dispatched {
		t.Error("order marked dispatched despite failed debit")
	}
}

func TestOrderRepository_DispatchExactStock(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewOrderRepository(db)
	ctx := context.Background()

	setStock(t, db, models.BeerRedHelles, 100)
	order := testOrder("2003", models.BeerRedHelles, 100)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Dispatch(ctx, order); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if got := stockLevel(t, db, models.BeerRedHelles); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
}

func TestOrderRepository_DeleteReportsPresence(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewOrderRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, testOrder("3001", models.BeerPilsner, 50)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.Delete(ctx, "3001")
	if err != nil || !found {
		t.Errorf("Delete = %v, %v; want true, nil", found, err)
	}
	found, err = repo.Delete(ctx, "3001")
	if err != nil || found {
		t.Errorf("second Delete = %v, %v; want false, nil", found, err)
	}
}

func TestOrderRepository_ListOrderedByDateRequired(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewOrderRepository(db)
	ctx := context.Background()

	early := testOrder("4002", models.BeerDunkel, 10)
	early.DateRequired = early.DateRequired.AddDate(0, -1, 0)
	late := testOrder("4001", models.BeerDunkel, 10)

	if err := repo.Create(ctx, late); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, early); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].Invoice != "4002" || got[1].Invoice != "4001" {
		t.Errorf("unexpected order: %v, %v", got[0].Invoice, got[1].Invoice)
	}
}
