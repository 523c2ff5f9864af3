package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: batches in
// every pipeline phase, a mix of pending and dispatched orders, stocked
// inventory and a fitted forecast. Destructive only in the sense that it
// assumes an empty database.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC()

	// Batches - windows are internally consistent with the phase durations
	fermStart := now.Add(-200 * time.Hour)
	fermEnd := fermStart.Add(672 * time.Hour)
	condStart := now.Add(-300 * time.Hour)
	condEnd := condStart.Add(336 * time.Hour)
	batches := []struct {
		id, beer  string
		volume    int
		phase     string
		tank      string
		last      string
		winPhase  string
		winStart  time.Time
		winEnd    time.Time
		hasWindow bool
	}{
		{id: "BT-1001", beer: "dunkel", volume: 1000, phase: "fermenting", tank: "albert", last: "hot_brewing", winPhase: "fermenting", winStart: fermStart, winEnd: fermEnd, hasWindow: true},
		{id: "BT-1002", beer: "pilsner", volume: 800, phase: "conditioning", tank: "brigadier", last: "fermenting", winPhase: "conditioning", winStart: condStart, winEnd: condEnd, hasWindow: true},
		{id: "BT-1003", beer: "red_helles", volume: 680, phase: "unset"},
	}
	for _, b := range batches {
		tank := sql.NullString{String: b.tank, Valid: b.tank != ""}
		last := b.last
		if last == "" {
			last = "unset"
		}
		if _, err := database.Exec(
			"INSERT INTO batches (id, beer_type, volume, phase, tank, last_completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			b.id, b.beer, b.volume, b.phase, tank, last, now, now,
		); err != nil {
			return fmt.Errorf("seed batches: %w", err)
		}
		if b.hasWindow {
			col := b.winPhase
			if _, err := database.Exec(
				fmt.Sprintf("UPDATE batches SET %s_start = ?, %s_end = ? WHERE id = ?", col, col),
				b.winStart, b.winEnd, b.id,
			); err != nil {
				return fmt.Errorf("seed batch windows: %w", err)
			}
		}
	}

	// Inventory
	levels := []struct {
		beer  string
		count int
	}{
		{"dunkel", 1200},
		{"pilsner", 640},
		{"red_helles", 0},
	}
	for _, l := range levels {
		if _, err := database.Exec(
			"UPDATE inventory SET quantity = ?, updated_at = ? WHERE beer_type = ?",
			l.count, now, l.beer,
		); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	// Orders
	orders := []struct {
		invoice, customer, beer string
		required                time.Time
		quantity                int
		dispatched              bool
	}{
		{"2001", "The Crown & Anchor", "dunkel", now.AddDate(0, 0, 14), 240, false},
		{"2002", "Fountain Square Bottle Shop", "pilsner", now.AddDate(0, 0, 7), 120, false},
		{"2003", "The Malt House", "dunkel", now.AddDate(0, 0, -3), 300, true},
	}
	for _, o := range orders {
		if _, err := database.Exec(
			"INSERT INTO orders (invoice, customer, date_required, beer_type, quantity, dispatched, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			o.invoice, o.customer, o.required, o.beer, o.quantity, o.dispatched, now, now,
		); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
	}

	// Forecasts - three months ahead for each beer type
	predictions := map[string][]int{
		"dunkel":     {900, 950, 1100},
		"pilsner":    {700, 650, 720},
		"red_helles": {400, 420, 380},
	}
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for beer, points := range predictions {
		for i, predicted := range points {
			if _, err := database.Exec(
				"INSERT INTO forecasts (beer_type, month_start, predicted) VALUES (?, ?, ?)",
				beer, month.AddDate(0, i, 0), predicted,
			); err != nil {
				return fmt.Errorf("seed forecasts: %w", err)
			}
		}
	}

	return nil
}
