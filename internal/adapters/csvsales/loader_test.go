package csvsales

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/brewtrack/internal/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoaderParsesRows(t *testing.T) {
	path := writeCSV(t, `Invoice Number,Date Required,Recipe,Quantity ordered,Customer
1001,14-Jun-19,Organic Dunkel,240,The Crown
1002,02-Jul-19,Pilsner Lager,120,The Anchor
1003,15-Jul-19,Bright Helles,60,The Malt House
`)

	sales, dropped, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	if len(sales) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(sales))
	}

	want := time.Date(2019, time.June, 14, 0, 0, 0, 0, time.UTC)
	if !sales[0].Date.Equal(want) {
		t.Errorf("date = %v, want %v", sales[0].Date, want)
	}
	if sales[0].BeerType != models.BeerDunkel || sales[0].Quantity != 240 {
		t.Errorf("row 0 = %+v", sales[0])
	}
	if sales[1].BeerType != models.BeerPilsner {
		t.Errorf("row 1 beer = %s", sales[1].BeerType)
	}
	if sales[2].BeerType != models.BeerRedHelles {
		t.Errorf("row 2 beer = %s", sales[2].BeerType)
	}
}

func TestLoaderDropsMalformedRows(t *testing.T) {
	path := writeCSV(t, `Date Required,Recipe,Quantity ordered
14-Jun-19,Dunkel,240
not-a-date,Dunkel,100
14-Jun-19,Coffee Stout,100
14-Jun-19,Pilsner,
14-Jun-19,Pilsner,-5
02-Jul-19,Helles,60
`)

	sales, dropped, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sales) != 2 {
		t.Errorf("expected 2 clean rows, got %d", len(sales))
	}
	if dropped != 4 {
		t.Errorf("dropped = %d, want 4", dropped)
	}
}

func TestLoaderIgnoresColumnOrder(t *testing.T) {
	path := writeCSV(t, `Recipe,Gross,Quantity ordered,Date Required
Dunkel,12.40,240,14-Jun-19
`)

	sales, _, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sales) != 1 || sales[0].Quantity != 240 {
		t.Errorf("unexpected result: %+v", sales)
	}
}

func TestLoaderRejectsMissingColumns(t *testing.T) {
	path := writeCSV(t, `Date Required,Quantity ordered
14-Jun-19,240
`)

	if _, _, err := NewLoader().Load(context.Background(), path); err == nil {
		t.Fatal("expected error for missing Recipe column")
	}
}

func TestLoaderRejectsMissingFile(t *testing.T) {
	if _, _, err := NewLoader().Load(context.Background(), "/nonexistent/sales.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
