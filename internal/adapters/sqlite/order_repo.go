package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// OrderRepository implements secondary.OrderRepository with SQLite.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new SQLite order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = "invoice, customer, date_required, beer_type, quantity, dispatched, created_at, updated_at"

// Create persists a new pending order.
func (r *OrderRepository) Create(ctx context.Context, order *secondary.OrderRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO orders (invoice, customer, date_required, beer_type, quantity, dispatched) VALUES (?, ?, ?, ?, ?, ?)",
		order.Invoice, order.Customer, order.DateRequired, string(order.BeerType), order.Quantity, order.Dispatched,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByInvoice retrieves an order by invoice number.
func (r *OrderRepository) GetByInvoice(ctx context.Context, invoice string) (*secondary.OrderRecord, error) {
	record, err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE invoice = ?", invoice,
	))
	if err == sql.ErrNoRows {
		return nil, faults.NotFound("order", invoice)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return record, nil
}

// Exists reports whether an invoice number is already registered.
func (r *OrderRepository) Exists(ctx context.Context, invoice string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders WHERE invoice = ?", invoice).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}
	return count > 0, nil
}

// Dispatch debits the inventory and marks the order dispatched in one
// transaction. The conditional UPDATE is the stock guard: when the ledger
// holds fewer bottles than the order needs no row matches, and the whole
// transaction rolls back with an InsufficientStockError.
func (r *OrderRepository) Dispatch(ctx context.Context, order *secondary.OrderRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE inventory SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP WHERE beer_type = ? AND quantity >= ?",
		order.Quantity, string(order.BeerType), order.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to debit inventory: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		var available int
		if err := tx.QueryRowContext(ctx,
			"SELECT quantity FROM inventory WHERE beer_type = ?", string(order.BeerType),
		).Scan(&available); err != nil {
			return fmt.Errorf("failed to read stock level: %w", err)
		}
		return &faults.InsufficientStockError{
			BeerType:  string(order.BeerType),
			Requested: order.Quantity,
			Available: available,
		}
	}

	result, err = tx.ExecContext(ctx,
		"UPDATE orders SET dispatched = 1, updated_at = CURRENT_TIMESTAMP WHERE invoice = ?",
		order.Invoice,
	)
	if err != nil {
		return fmt.Errorf("failed to mark order dispatched: %w", err)
	}
	rowsAffected, _ = result.RowsAffected()
	if rowsAffected == 0 {
		return faults.NotFound("order", order.Invoice)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dispatch: %w", err)
	}

	return nil
}

// Delete removes an order, reporting whether it was present.
func (r *OrderRepository) Delete(ctx context.Context, invoice string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE invoice = ?", invoice)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// List retrieves all orders ordered by date required.
func (r *OrderRepository) List(ctx context.Context) ([]*secondary.OrderRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY date_required, invoice",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*secondary.OrderRecord
	for rows.Next() {
		record, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, record)
	}

	return orders, rows.Err()
}

// DeleteAll clears the table. Used by snapshot restore.
func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM orders"); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	return nil
}

func scanOrder(row rowScanner) (*secondary.OrderRecord, error) {
	var beer string
	record := &secondary.OrderRecord{}
	err := row.Scan(&record.Invoice, &record.Customer, &record.DateRequired, &beer,
		&record.Quantity, &record.Dispatched, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.BeerType = models.BeerType(beer)
	return record, nil
}

// Ensure OrderRepository implements the interface
var _ secondary.OrderRepository = (*OrderRepository)(nil)
