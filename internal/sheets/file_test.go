// internal/sheets/file_test.go
package sheets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	content := "Brand,Model,Notes,Powder Type\n" +
		"Optimum Nutrition,Gold Standard,,\"Whey, Isolate\"\n" +
		"Dymatize,ISO100\n"

	rows, err := ReadCSV(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Optimum Nutrition", rows[0].Cell(0))
	assert.Nil(t, rows[0].Cell(2))
	assert.Equal(t, "Whey, Isolate", rows[0].Cell(3))
	assert.Equal(t, "ISO100", rows[1].Cell(1))
	assert.Nil(t, rows[1].Cell(3))
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("Brand,Model\nA,B\n"), 0o644))

	source, err := NewFileSource(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", source.Kind())

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Cell(1))

	_, err = (&CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}).Rows(context.Background())
	assert.ErrorIs(t, err, ErrTransportUnavailable)
}

func TestXLSXSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.xlsx")

	book := excelize.NewFile()
	book.SetCellValue("Sheet1", "A1", "Brand")
	book.SetCellValue("Sheet1", "B1", "Model")
	book.SetCellValue("Sheet1", "A2", "Optimum Nutrition")
	book.SetCellValue("Sheet1", "B2", "Gold Standard")
	book.SetCellValue("Sheet1", "C2", "120")
	require.NoError(t, book.SaveAs(path))

	source, err := NewFileSource(path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", source.Kind())

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Optimum Nutrition", rows[0].Cell(0))
	assert.Equal(t, "Gold Standard", rows[0].Cell(1))
	assert.Equal(t, "120", rows[0].Cell(2))
}

func TestNewFileSourceRejectsUnknownExtension(t *testing.T) {
	_, err := NewFileSource("products.json")
	assert.Error(t, err)
}

func TestRowCell(t *testing.T) {
	row := Row{"a", nil}
	assert.Equal(t, "a", row.Cell(0))
	assert.Nil(t, row.Cell(1))
	assert.Nil(t, row.Cell(5))
	assert.Nil(t, row.Cell(-1))
}
