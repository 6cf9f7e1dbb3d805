// internal/sheets/source.go

// Package sheets turns spreadsheet exports into rows of loosely typed cells.
//
// A Row is positional: index i holds the value of column i, and a nil entry
// means the cell was absent. Values are whatever the export carried: strings
// for CSV and XLSX, and strings, bools or json.Number for the gviz feed.
package sheets

import (
	"context"
	"errors"
)

var (
	// ErrTransportUnavailable means the export could not be fetched or opened.
	ErrTransportUnavailable = errors.New("spreadsheet transport unavailable")
	// ErrMalformedPayload means the export was fetched but could not be read as a table.
	ErrMalformedPayload = errors.New("malformed spreadsheet payload")
)

type Row []interface{}

// Cell returns the value at index i, or nil when the row is shorter.
func (r Row) Cell(i int) interface{} {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

type Source interface {
	// Kind names the source in import history, e.g. "gviz".
	Kind() string
	// Location describes where the rows come from.
	Location() string
	Rows(ctx context.Context) ([]Row, error)
}

// textRow converts string records to rows; empty strings become absent cells.
func textRow(record []string) Row {
	row := make(Row, len(record))
	for i, value := range record {
		if value != "" {
			row[i] = value
		}
	}
	return row
}
