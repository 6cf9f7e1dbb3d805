// internal/sheets/file.go
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
)

// CSVSource reads a CSV export of the sheet. The first record is the header.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Kind() string     { return "csv" }
func (s *CSVSource) Location() string { return s.Path }

func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses CSV content, dropping the header record.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := gocsv.LazyCSVReader(r)
	// Exports drop trailing empty cells on some rows.
	if csvReader, ok := reader.(*csv.Reader); ok {
		csvReader.FieldsPerRecord = -1
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty csv", ErrMalformedPayload)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, textRow(record))
	}
	return rows, nil
}

// XLSXSource reads a workbook export. Sheet defaults to the first sheet.
type XLSXSource struct {
	Path  string
	Sheet string
}

func (s *XLSXSource) Kind() string     { return "xlsx" }
func (s *XLSXSource) Location() string { return s.Path }

func (s *XLSXSource) Rows(ctx context.Context) ([]Row, error) {
	book, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
	}

	sheet := s.Sheet
	if sheet == "" {
		sheet = book.GetSheetName(1)
	}
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedPayload)
	}

	records := book.GetRows(sheet)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMalformedPayload, sheet)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, textRow(record))
	}
	return rows, nil
}

// NewFileSource picks a file source from the extension.
func NewFileSource(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVSource{Path: path}, nil
	case ".xlsx":
		return &XLSXSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}
