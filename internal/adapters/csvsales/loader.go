// Package csvsales loads historical sales data from CSV exports.
package csvsales

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// dateLayout matches the export's "14-Jun-19" date style.
const dateLayout = "02-Jan-06"

// Loader implements secondary.SalesHistorySource for CSV sales exports.
// Rows with missing or malformed values are dropped and counted rather
// than failing the whole load: real exports are dirty.
type Loader struct{}

// NewLoader creates a new CSV sales loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads historical sales rows from the file at path.
func (l *Loader) Load(ctx context.Context, path string) ([]secondary.SalesRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open sales file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sales CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, 0, fmt.Errorf("sales CSV must have header and at least one data row")
	}

	dateCol, recipeCol, qtyCol, err := locateColumns(records[0])
	if err != nil {
		return nil, 0, err
	}

	var sales []secondary.SalesRecord
	dropped := 0
	for _, record := range records[1:] {
		rec, ok := parseRow(record, dateCol, recipeCol, qtyCol)
		if !ok {
			dropped++
			continue
		}
		sales = append(sales, rec)
	}

	return sales, dropped, nil
}

// locateColumns finds the three columns we need by header name. Extra
// columns in the export are ignored.
func locateColumns(header []string) (dateCol, recipeCol, qtyCol int, err error) {
	dateCol, recipeCol, qtyCol = -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "date required":
			dateCol = i
		case "recipe":
			recipeCol = i
		case "quantity ordered":
			qtyCol = i
		}
	}
	if dateCol < 0 || recipeCol < 0 || qtyCol < 0 {
		return 0, 0, 0, fmt.Errorf("sales CSV header missing required columns (need Date Required, Recipe, Quantity ordered), got: %v", header)
	}
	return dateCol, recipeCol, qtyCol, nil
}

func parseRow(record []string, dateCol, recipeCol, qtyCol int) (secondary.SalesRecord, bool) {
	max := dateCol
	if recipeCol > max {
		max = recipeCol
	}
	if qtyCol > max {
		max = qtyCol
	}
	if len(record) <= max {
		return secondary.SalesRecord{}, false
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(record[dateCol]))
	if err != nil {
		return secondary.SalesRecord{}, false
	}

	beer, ok := normalizeRecipe(record[recipeCol])
	if !ok {
		return secondary.SalesRecord{}, false
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[qtyCol]))
	if err != nil || quantity <= 0 {
		return secondary.SalesRecord{}, false
	}

	return secondary.SalesRecord{Date: date, BeerType: beer, Quantity: quantity}, true
}

// normalizeRecipe maps free-text recipe names from the export onto the
// three known beer types. Exports write variants like "Bright Helles" or
// "Pilsner Lager".
func normalizeRecipe(raw string) (models.BeerType, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(name, "dunkel"):
		return models.BeerDunkel, true
	case strings.Contains(name, "pilsner"):
		return models.BeerPilsner, true
	case strings.Contains(name, "helles"):
		return models.BeerRedHelles, true
	default:
		return "", false
	}
}

// Ensure Loader implements the interface
var _ secondary.SalesHistorySource = (*Loader)(nil)
