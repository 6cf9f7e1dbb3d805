// internal/services/services_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/database"
	"github.com/javajoker/protein-search/internal/sheets"
)

// staticSource serves fixed rows, or a fixed error.
type staticSource struct {
	rows []sheets.Row
	err  error
}

func (s *staticSource) Kind() string     { return "csv" }
func (s *staticSource) Location() string { return "memory" }

func (s *staticSource) Rows(ctx context.Context) ([]sheets.Row, error) {
	return s.rows, s.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

// productRow builds a minimal sheet row; extra sets further cells by column.
func productRow(brand, model, powderTypes, origins string, extra map[int]interface{}) sheets.Row {
	row := make(sheets.Row, colLink+1)
	row[colBrand] = brand
	row[colModel] = model
	if powderTypes != "" {
		row[colPowderTypes] = powderTypes
	}
	if origins != "" {
		row[colProteinOrigins] = origins
	}
	for col, value := range extra {
		row[col] = value
	}
	return row
}
