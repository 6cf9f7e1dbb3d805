// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type ImportSource string

const (
	ImportSourceGViz ImportSource = "gviz"
	ImportSourceCSV  ImportSource = "csv"
	ImportSourceXLSX ImportSource = "xlsx"
)

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// All returns every model managed by the schema, parents first.
func All() []interface{} {
	return []interface{}{
		&Product{},
		&PowderType{},
		&ProteinOrigin{},
		&ProductPowderType{},
		&ProductProteinOrigin{},
		&NutritionFacts{},
		&ServingInfo{},
		&Features{},
		&AmazonInfo{},
		&UserReview{},
		&ImportRun{},
	}
}
