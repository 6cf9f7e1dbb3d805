// internal/services/import_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/protein-search/internal/models"
	"github.com/javajoker/protein-search/internal/sheets"
)

type ImportService struct {
	db *gorm.DB
}

type ImportSummary struct {
	RunID    uint           `json:"run_id"`
	Source   string         `json:"source"`
	Location string         `json:"location"`
	RowsSeen int            `json:"rows_seen"`
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Failures map[int]string `json:"failures,omitempty"`
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

// Run imports every row of the source. Only failures to read the source as a
// whole are returned; problems with individual rows are counted in the
// summary and the run continues.
func (s *ImportService) Run(ctx context.Context, source sheets.Source) (*ImportSummary, error) {
	summary := &ImportSummary{
		Source:   source.Kind(),
		Location: source.Location(),
		Failures: make(map[int]string),
	}
	log := logrus.WithFields(logrus.Fields{
		"source":   summary.Source,
		"location": summary.Location,
	})

	run := &models.ImportRun{
		Source:    models.ImportSource(summary.Source),
		Location:  summary.Location,
		Status:    models.ImportStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record import run: %w", err)
	}
	summary.RunID = run.ID

	log.Info("Fetching spreadsheet rows")
	rows, err := source.Rows(ctx)
	if err != nil {
		s.finishRun(run, summary, err)
		return summary, err
	}

	for i, row := range rows {
		rowNumber := i + 1
		summary.RowsSeen++

		record, ok := ParseProductRow(row)
		if !ok {
			summary.Skipped++
			log.WithField("row", rowNumber).Debug("Skipping row without model")
			continue
		}

		if _, err := s.ImportRecord(record); err != nil {
			summary.Failed++
			summary.Failures[rowNumber] = err.Error()
			log.WithError(err).WithFields(logrus.Fields{
				"row":   rowNumber,
				"brand": record.Brand,
				"model": record.Model,
			}).Warn("Row imported with errors")
			continue
		}
		summary.Imported++
	}

	s.finishRun(run, summary, nil)

	log.WithFields(logrus.Fields{
		"rows":     summary.RowsSeen,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
	}).Info("Import finished")

	return summary, nil
}

// ImportRecord writes one cleaned row. The product upsert must succeed; every
// later step runs in its own transaction and runs even if an earlier one failed.
func (s *ImportService) ImportRecord(record ProductRecord) (*models.Product, error) {
	product, err := s.upsertProduct(record)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}

	var errs []error
	if record.PowderTypes != nil {
		if err := s.replacePowderTypes(product.ID, record.PowderTypes); err != nil {
			errs = append(errs, fmt.Errorf("powder types: %w", err))
		}
	}

	nutrition := record.Nutrition
	nutrition.ProductID = product.ID
	if err := s.upsertExtension(&nutrition); err != nil {
		errs = append(errs, fmt.Errorf("nutrition facts: %w", err))
	}

	serving := record.Serving
	serving.ProductID = product.ID
	if err := s.upsertExtension(&serving); err != nil {
		errs = append(errs, fmt.Errorf("serving info: %w", err))
	}

	features := record.Features
	features.ProductID = product.ID
	if err := s.upsertExtension(&features); err != nil {
		errs = append(errs, fmt.Errorf("features: %w", err))
	}

	if record.ProteinOrigins != nil {
		if err := s.replaceProteinOrigins(product.ID, record.ProteinOrigins); err != nil {
			errs = append(errs, fmt.Errorf("protein origins: %w", err))
		}
	}

	amazon := record.Amazon
	amazon.ProductID = product.ID
	if err := s.upsertExtension(&amazon); err != nil {
		errs = append(errs, fmt.Errorf("amazon info: %w", err))
	}

	return product, errors.Join(errs...)
}

func (s *ImportService) upsertProduct(record ProductRecord) (*models.Product, error) {
	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where(map[string]interface{}{"brand": record.Brand, "model": record.Model}).
			Assign(map[string]interface{}{"link": record.Link}).
			FirstOrCreate(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// upsertExtension inserts a one-to-one extension row or overwrites every
// column of the existing one.
func (s *ImportService) upsertExtension(value interface{}) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).Create(value).Error
	})
}

func (s *ImportService) replacePowderTypes(productID uint, names []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductPowderType{}).Error; err != nil {
			return fmt.Errorf("failed to clear associations: %w", err)
		}

		for _, name := range names {
			var powderType models.PowderType
			if err := tx.Where(map[string]interface{}{"name": name}).FirstOrCreate(&powderType).Error; err != nil {
				return fmt.Errorf("failed to get or create %q: %w", name, err)
			}

			link := &models.ProductPowderType{ProductID: productID, PowderTypeID: powderType.ID}
			if err := tx.Omit(clause.Associations).Create(link).Error; err != nil {
				return fmt.Errorf("failed to link %q: %w", name, err)
			}
		}
		return nil
	})
}

func (s *ImportService) replaceProteinOrigins(productID uint, names []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductProteinOrigin{}).Error; err != nil {
			return fmt.Errorf("failed to clear associations: %w", err)
		}

		for _, name := range names {
			var origin models.ProteinOrigin
			if err := tx.Where(map[string]interface{}{"name": name}).FirstOrCreate(&origin).Error; err != nil {
				return fmt.Errorf("failed to get or create %q: %w", name, err)
			}

			link := &models.ProductProteinOrigin{ProductID: productID, ProteinOriginID: origin.ID}
			if err := tx.Omit(clause.Associations).Create(link).Error; err != nil {
				return fmt.Errorf("failed to link %q: %w", name, err)
			}
		}
		return nil
	})
}

func (s *ImportService) finishRun(run *models.ImportRun, summary *ImportSummary, runErr error) {
	now := time.Now()
	run.FinishedAt = &now
	run.RowsSeen = summary.RowsSeen
	run.Imported = summary.Imported
	run.Skipped = summary.Skipped
	run.Failed = summary.Failed
	run.Status = models.ImportStatusCompleted

	if len(summary.Failures) > 0 {
		run.Failures = make(datatypes.JSONMap, len(summary.Failures))
		for row, msg := range summary.Failures {
			run.Failures[strconv.Itoa(row)] = msg
		}
	}
	if runErr != nil {
		run.Status = models.ImportStatusFailed
		run.Error = runErr.Error()
	}

	if err := s.db.Save(run).Error; err != nil {
		logrus.WithError(err).WithField("run_id", run.ID).Error("Failed to record import result")
	}
}

// LatestRuns returns the most recent import runs, newest first.
func (s *ImportService) LatestRuns(limit int) ([]models.ImportRun, error) {
	var runs []models.ImportRun
	if err := s.db.Order("started_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch import runs: %w", err)
	}
	return runs, nil
}
