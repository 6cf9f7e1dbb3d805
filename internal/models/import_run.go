// internal/models/import_run.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportRun struct {
	BaseModel
	Source     ImportSource      `json:"source" gorm:"type:varchar(20);not null"`
	Location   string            `json:"location" gorm:"size:500"`
	Status     ImportStatus      `json:"status" gorm:"type:varchar(20);not null;index"`
	RowsSeen   int               `json:"rows_seen"`
	Imported   int               `json:"imported"`
	Skipped    int               `json:"skipped"`
	Failed     int               `json:"failed"`
	Failures   datatypes.JSONMap `json:"failures"`
	Error      string            `json:"error" gorm:"type:text"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt *time.Time        `json:"finished_at"`
}
