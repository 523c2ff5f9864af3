// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema, preventing drift between test and production. Do
// not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/brewtrack/internal/db"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The schema seeds the inventory table with a zero row per beer type.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setStock overwrites a beer type's bottle count directly.
func setStock(t *testing.T, db *sql.DB, beer models.BeerType, bottles int) {
	t.Helper()
	if _, err := db.Exec("UPDATE inventory SET quantity = ? WHERE beer_type = ?", bottles, string(beer)); err != nil {
		t.Fatalf("failed to set stock: %v", err)
	}
}

// stockLevel reads a beer type's bottle count directly.
func stockLevel(t *testing.T, db *sql.DB, beer models.BeerType) int {
	t.Helper()
	var quantity int
	if err := db.QueryRow("SELECT quantity FROM inventory WHERE beer_type = ?", string(beer)).Scan(&quantity); err != nil {
		t.Fatalf("failed to read stock: %v", err)
	}
	return quantity
}

// testBatch builds a minimal unset batch record.
func testBatch(id string, beer models.BeerType, volume int) *secondary.BatchRecord {
	return &secondary.BatchRecord{
		ID:            id,
		BeerType:      beer,
		Volume:        volume,
		Phase:         models.PhaseUnset,
		LastCompleted: models.PhaseUnset,
	}
}

// testOrder builds a pending order record.
func testOrder(invoice string, beer models.BeerType, quantity int) *secondary.OrderRecord {
	return &secondary.OrderRecord{
		Invoice:      invoice,
		Customer:     "Test Taphouse",
		DateRequired: time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		BeerType:     beer,
		Quantity:     quantity,
	}
}
