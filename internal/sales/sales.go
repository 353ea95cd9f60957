// Package sales normalizes the sales dataset into raw transaction rows.
// Field-level validation happens later, against the price book; here only
// the container shape is enforced.
package sales

import (
	"errors"

	"sales-cost/internal/jsonio"
	"sales-cost/pkg/diag"
)

// ErrNotSequence marks a sales document whose top level is not a JSON
// array.
var ErrNotSequence = errors.New("sales document is not a sequence")

// Row is one raw sales record as decoded from JSON.
type Row map[string]any

// Normalize walks the decoded sales document and keeps the object
// elements, in order. Non-object elements are reported and dropped, which
// renumbers the rows that follow them.
func Normalize(doc any) ([]Row, diag.List, error) {
	items, ok := jsonio.Sequence(doc)
	if !ok {
		var diags diag.List
		diags.Fatalf(diag.StageSales, 0, "Sales JSON must be a list of sales rows.")
		return nil, diags, ErrNotSequence
	}

	rows := make([]Row, 0, len(items))
	var diags diag.List
	for i, item := range items {
		obj, ok := jsonio.Object(item)
		if !ok {
			diags.Warnf(diag.StageSales, i+1, "Sales row #%d: not an object -> ignored", i+1)
			continue
		}
		rows = append(rows, Row(obj))
	}
	if len(rows) == 0 {
		diags.Warnf(diag.StageSales, 0, "No valid sales rows found.")
	}
	return rows, diags, nil
}
