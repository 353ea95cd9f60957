// Package compute validates sales rows against the price book and
// accumulates the run totals. Validation is all-or-nothing per row: a row
// either contributes price times quantity to the total or is skipped with
// exactly one diagnostic naming the first rule it broke.
package compute

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"sales-cost/internal/catalog"
	"sales-cost/internal/sales"
	"sales-cost/pkg/coerce"
	"sales-cost/pkg/diag"
)

// RejectReason classifies why a row was not counted.
type RejectReason string

const (
	ReasonMissingProduct      RejectReason = "missing_product"
	ReasonInvalidQuantity     RejectReason = "invalid_quantity"
	ReasonNonPositiveQuantity RejectReason = "non_positive_quantity"
	ReasonUnknownProduct      RejectReason = "unknown_product"
)

// Outcome is the result of validating a single sales row. Exactly one of
// the two arms is populated: an accepted row carries the trimmed product,
// quantity and resolved unit price; a rejected row carries the reason and
// its diagnostic.
type Outcome struct {
	Accepted   bool
	Product    string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Reason     RejectReason
	Diagnostic diag.Diagnostic
}

// Totals is the aggregate over all examined rows.
type Totals struct {
	Total     decimal.Decimal
	Processed int
	Ignored   int
	Unknown   int
}

// ValidateRow applies the field rules to one row in order, stopping at the
// first failure. idx is the 1-based position of the row in the normalized
// slice.
//
// Rule order: Product present and non-blank, Quantity coercible, Quantity
// positive, product priced in the book.
func ValidateRow(idx int, row sales.Row, book catalog.PriceBook) Outcome {
	product, ok := row["Product"].(string)
	if !ok || strings.TrimSpace(product) == "" {
		return reject(idx, ReasonMissingProduct,
			fmt.Sprintf("Row #%d: missing/invalid Product -> skipped", idx))
	}
	qty, ok := coerce.Int(row["Quantity"])
	if !ok {
		return reject(idx, ReasonInvalidQuantity,
			fmt.Sprintf("Row #%d: invalid Quantity '%v' for '%s' -> skipped", idx, row["Quantity"], product))
	}
	if qty <= 0 {
		return reject(idx, ReasonNonPositiveQuantity,
			fmt.Sprintf("Row #%d: non-positive Quantity '%d' for '%s' -> skipped", idx, qty, product))
	}
	key := strings.TrimSpace(product)
	price, ok := book.Price(key)
	if !ok {
		return reject(idx, ReasonUnknownProduct,
			fmt.Sprintf("Row #%d: product not in catalogue '%s' -> skipped", idx, key))
	}
	return Outcome{Accepted: true, Product: key, Quantity: qty, UnitPrice: price}
}

func reject(idx int, reason RejectReason, msg string) Outcome {
	return Outcome{
		Reason: reason,
		Diagnostic: diag.Diagnostic{
			Stage:    diag.StageRow,
			Severity: diag.SeverityWarning,
			Row:      idx,
			Message:  msg,
		},
	}
}

// Aggregate validates every row in order and accumulates the totals. The
// price book must be complete before the first row is examined; rows never
// modify it.
func Aggregate(book catalog.PriceBook, rows []sales.Row) (Totals, diag.List) {
	totals := Totals{Total: decimal.Zero}
	var diags diag.List
	for i, row := range rows {
		out := ValidateRow(i+1, row, book)
		if !out.Accepted {
			totals.Ignored++
			if out.Reason == ReasonUnknownProduct {
				totals.Unknown++
			}
			diags = append(diags, out.Diagnostic)
			continue
		}
		totals.Total = totals.Total.Add(out.UnitPrice.Mul(decimal.NewFromInt(out.Quantity)))
		totals.Processed++
	}
	return totals, diags
}
