package run

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExecuteHappyPath(t *testing.T) {
	dir := t.TempDir()
	cat := writeInput(t, dir, "priceCatalogue.json",
		`[{"title": "Pen", "price": 1.50}, {"title": "Notebook", "price": 4.00}]`)
	rec := writeInput(t, dir, "salesRecord.json",
		`[{"Product": "Pen", "Quantity": 2}, {"Product": "Notebook", "Quantity": 1}]`)

	res := Execute(cat, rec, time.Now())
	if res.Fatal {
		t.Fatalf("run marked fatal: %v", res.Diagnostics.Messages())
	}
	if !res.Totals.Total.Equal(decimal.RequireFromString("7.00")) {
		t.Errorf("Total = %s, want 7.00", res.Totals.Total)
	}
	if res.Totals.Processed != 2 || res.Totals.Ignored != 0 || res.Totals.Unknown != 0 {
		t.Errorf("counters = %d/%d/%d, want 2/0/0",
			res.Totals.Processed, res.Totals.Ignored, res.Totals.Unknown)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", res.Diagnostics.Messages())
	}
	if res.RunID == uuid.Nil {
		t.Error("RunID not assigned")
	}
	if res.CataloguePath != cat || res.SalesPath != rec {
		t.Errorf("paths = %q/%q", res.CataloguePath, res.SalesPath)
	}
	if res.ElapsedSeconds < 0 {
		t.Errorf("ElapsedSeconds = %f", res.ElapsedSeconds)
	}
}

func TestExecuteMixedValidityOrdersDiagnostics(t *testing.T) {
	dir := t.TempDir()
	cat := writeInput(t, dir, "priceCatalogue.json",
		`[{"title": "Pen", "price": 1.50}, {"title": "Glue", "price": "sticky"}]`)
	rec := writeInput(t, dir, "salesRecord.json",
		`["junk", {"Product": "Pen", "Quantity": 2}, {"Product": "Ghost", "Quantity": 1}]`)

	res := Execute(cat, rec, time.Now())
	if res.Fatal {
		t.Fatalf("run marked fatal: %v", res.Diagnostics.Messages())
	}
	want := []string{
		"Catalogue row #2: invalid price for 'Glue' -> ignored",
		"Sales row #1: not an object -> ignored",
		"Row #2: product not in catalogue 'Ghost' -> skipped",
	}
	got := res.Diagnostics.Messages()
	if len(got) != len(want) {
		t.Fatalf("diagnostics = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diagnostic[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !res.Totals.Total.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("Total = %s, want 3.00", res.Totals.Total)
	}
	if res.Totals.Processed != 1 || res.Totals.Ignored != 1 || res.Totals.Unknown != 1 {
		t.Errorf("counters = %d/%d/%d, want 1/1/1",
			res.Totals.Processed, res.Totals.Ignored, res.Totals.Unknown)
	}
}

func TestExecuteMissingCatalogueIsFatal(t *testing.T) {
	dir := t.TempDir()
	cat := filepath.Join(dir, "absent.json")
	rec := writeInput(t, dir, "salesRecord.json", `[{"Product": "Pen", "Quantity": 2}]`)

	res := Execute(cat, rec, time.Now())
	if !res.Fatal {
		t.Fatal("run not marked fatal")
	}
	msgs := res.Diagnostics.Messages()
	if len(msgs) != 1 || msgs[0] != "File not found: "+cat {
		t.Errorf("diagnostics = %v", msgs)
	}
	if !res.Totals.Total.IsZero() || res.Totals.Processed != 0 {
		t.Errorf("fatal run carries non-zero totals: %+v", res.Totals)
	}
}

func TestExecuteBothInputsMissing(t *testing.T) {
	dir := t.TempDir()
	cat := filepath.Join(dir, "noCatalogue.json")
	rec := filepath.Join(dir, "noSales.json")

	res := Execute(cat, rec, time.Now())
	if !res.Fatal {
		t.Fatal("run not marked fatal")
	}
	want := []string{"File not found: " + cat, "File not found: " + rec}
	got := res.Diagnostics.Messages()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("diagnostics = %v, want %v", got, want)
	}
}

func TestExecuteInvalidJSONIsFatal(t *testing.T) {
	dir := t.TempDir()
	cat := writeInput(t, dir, "priceCatalogue.json", `[{"title": "Pen", "price": 1.50}]`)
	rec := writeInput(t, dir, "salesRecord.json", "[\n  {\"Product\": broken}\n]")

	res := Execute(cat, rec, time.Now())
	if !res.Fatal {
		t.Fatal("run not marked fatal")
	}
	msgs := res.Diagnostics.Messages()
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0], "Invalid JSON in "+rec+": line 2, col ") {
		t.Errorf("diagnostics = %v", msgs)
	}
}

func TestExecuteCatalogueWrongShapeShortCircuits(t *testing.T) {
	dir := t.TempDir()
	cat := writeInput(t, dir, "priceCatalogue.json", `{"title": "Pen", "price": 1.50}`)
	rec := writeInput(t, dir, "salesRecord.json", `"not a list either"`)

	res := Execute(cat, rec, time.Now())
	if !res.Fatal {
		t.Fatal("run not marked fatal")
	}
	msgs := res.Diagnostics.Messages()
	if len(msgs) != 1 || msgs[0] != "Catalogue JSON must be a list of products." {
		t.Errorf("diagnostics = %v, want catalogue shape diagnostic only", msgs)
	}
}

func TestExecuteSalesWrongShapeIsFatal(t *testing.T) {
	dir := t.TempDir()
	cat := writeInput(t, dir, "priceCatalogue.json", `[{"title": "Pen", "price": 1.50}]`)
	rec := writeInput(t, dir, "salesRecord.json", `{"Product": "Pen"}`)

	res := Execute(cat, rec, time.Now())
	if !res.Fatal {
		t.Fatal("run not marked fatal")
	}
	msgs := res.Diagnostics.Messages()
	if len(msgs) != 1 || msgs[0] != "Sales JSON must be a list of sales rows." {
		t.Errorf("diagnostics = %v", msgs)
	}
}

func TestExecuteEmptyBookCountsEverythingUnknown(t *testing.T) {
	dir := t.TempDir()
	cat := writeInput(t, dir, "priceCatalogue.json", `[{"title": "", "price": 1.00}]`)
	rec := writeInput(t, dir, "salesRecord.json",
		`[{"Product": "Pen", "Quantity": 2}, {"Product": "Ink", "Quantity": 1}]`)

	res := Execute(cat, rec, time.Now())
	if res.Fatal {
		t.Fatalf("empty price book must not be fatal: %v", res.Diagnostics.Messages())
	}
	if res.Totals.Processed != 0 || res.Totals.Ignored != 2 || res.Totals.Unknown != 2 {
		t.Errorf("counters = %d/%d/%d, want 0/2/2",
			res.Totals.Processed, res.Totals.Ignored, res.Totals.Unknown)
	}
	msgs := res.Diagnostics.Messages()
	found := false
	for _, m := range msgs {
		if m == "No valid products found in catalogue." {
			found = true
		}
	}
	if !found {
		t.Errorf("missing empty-book diagnostic in %v", msgs)
	}
	if !res.Totals.Total.IsZero() {
		t.Errorf("Total = %s, want 0", res.Totals.Total)
	}
}
