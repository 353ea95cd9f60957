// Package catalog builds the product price book from the catalogue
// dataset. Rows that cannot yield a usable title/price pair are reported
// and skipped; the book keeps whatever survived.
package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"sales-cost/internal/jsonio"
	"sales-cost/pkg/coerce"
	"sales-cost/pkg/diag"
)

// ErrNotSequence marks a catalogue document whose top level is not a JSON
// array. No price book can be built from it.
var ErrNotSequence = errors.New("catalogue document is not a sequence")

// PriceBook maps trimmed product titles to unit prices. It is built once
// per run, before any sales row is examined, and read-only afterwards.
type PriceBook map[string]decimal.Decimal

// Price returns the unit price recorded for a trimmed title.
func (b PriceBook) Price(title string) (decimal.Decimal, bool) {
	p, ok := b[title]
	return p, ok
}

// Build walks the decoded catalogue document and assembles the price book.
// Each element must be an object with a non-blank string title and a
// coercible, non-negative price; offenders produce a diagnostic and are
// skipped. When two rows share a title the later one wins.
func Build(doc any) (PriceBook, diag.List, error) {
	items, ok := jsonio.Sequence(doc)
	if !ok {
		var diags diag.List
		diags.Fatalf(diag.StageCatalogue, 0, "Catalogue JSON must be a list of products.")
		return nil, diags, ErrNotSequence
	}

	book := make(PriceBook, len(items))
	var diags diag.List
	for i, item := range items {
		row := i + 1
		obj, ok := jsonio.Object(item)
		if !ok {
			diags.Warnf(diag.StageCatalogue, row, "Catalogue row #%d: not an object -> ignored", row)
			continue
		}
		title, ok := obj["title"].(string)
		if !ok || strings.TrimSpace(title) == "" {
			diags.Warnf(diag.StageCatalogue, row, "Catalogue row #%d: missing/invalid title -> ignored", row)
			continue
		}
		price, ok := coerce.Decimal(obj["price"])
		if !ok {
			diags.Warnf(diag.StageCatalogue, row, "Catalogue row #%d: invalid price for '%s' -> ignored", row, title)
			continue
		}
		if price.IsNegative() {
			diags.Warnf(diag.StageCatalogue, row, "Catalogue row #%d: negative price for '%s' -> ignored", row, title)
			continue
		}
		book[strings.TrimSpace(title)] = price
	}
	if len(book) == 0 {
		diags.Warnf(diag.StageCatalogue, 0, "No valid products found in catalogue.")
	}
	return book, diags, nil
}
