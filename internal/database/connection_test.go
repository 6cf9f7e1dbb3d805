// internal/database/connection_test.go
package database

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

func TestMemoryDatabasesAreIsolated(t *testing.T) {
	first := openTestDB(t)
	second := openTestDB(t)

	require.NoError(t, first.Create(&models.Product{Brand: "A", Model: "B"}).Error)

	var n int64
	require.NoError(t, second.Model(&models.Product{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProductIdentityIsUnique(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&models.Product{Brand: "A", Model: "B"}).Error)
	assert.Error(t, db.Create(&models.Product{Brand: "A", Model: "B"}).Error)
	assert.NoError(t, db.Create(&models.Product{Brand: "C", Model: "B"}).Error)
}

func TestReviewConstraints(t *testing.T) {
	db := openTestDB(t)

	product := &models.Product{Brand: "A", Model: "B"}
	require.NoError(t, db.Create(product).Error)

	review := func(userID string, rating int) *models.UserReview {
		return &models.UserReview{
			ProductID:  product.ID,
			UserID:     userID,
			Title:      "t",
			ReviewText: "r",
			Rating:     rating,
			ReviewDate: datatypes.Date(time.Now()),
		}
	}

	require.NoError(t, db.Create(review("u1", 5)).Error)
	assert.Error(t, db.Create(review("u1", 4)).Error, "one review per user and product")
	assert.Error(t, db.Create(review("u2", 6)).Error, "rating above range")
	assert.Error(t, db.Create(review("u3", 0)).Error, "rating below range")

	orphan := review("u4", 3)
	orphan.ProductID = product.ID + 100
	assert.Error(t, db.Create(orphan).Error, "foreign keys are enforced")
}

func TestExtensionsShareProductKey(t *testing.T) {
	db := openTestDB(t)

	product := &models.Product{Brand: "A", Model: "B"}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, db.Create(&models.NutritionFacts{ProductID: product.ID, CaloriesPerScoop: 120}).Error)
	assert.Error(t, db.Create(&models.NutritionFacts{ProductID: product.ID, CaloriesPerScoop: 130}).Error)
}

func TestWithTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Product{Brand: "A", Model: "B"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, db.Model(&models.Product{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeletingProductCascades(t *testing.T) {
	db := openTestDB(t)

	product := &models.Product{Brand: "A", Model: "B"}
	require.NoError(t, db.Create(product).Error)
	kept := &models.Product{Brand: "C", Model: "D"}
	require.NoError(t, db.Create(kept).Error)

	whey := &models.PowderType{Name: "Whey"}
	require.NoError(t, db.Create(whey).Error)
	milk := &models.ProteinOrigin{Name: "Milk"}
	require.NoError(t, db.Create(milk).Error)

	require.NoError(t, db.Create(&models.NutritionFacts{ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&models.ServingInfo{ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&models.Features{ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&models.AmazonInfo{ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&models.ProductPowderType{ProductID: product.ID, PowderTypeID: whey.ID}).Error)
	require.NoError(t, db.Create(&models.ProductProteinOrigin{ProductID: product.ID, ProteinOriginID: milk.ID}).Error)
	require.NoError(t, db.Create(&models.UserReview{
		ProductID:  product.ID,
		UserID:     "u1",
		Title:      "t",
		ReviewText: "r",
		Rating:     4,
		ReviewDate: datatypes.Date(time.Now()),
	}).Error)
	require.NoError(t, db.Create(&models.ProductPowderType{ProductID: kept.ID, PowderTypeID: whey.ID}).Error)

	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	dependents := []interface{}{
		&models.NutritionFacts{},
		&models.ServingInfo{},
		&models.Features{},
		&models.AmazonInfo{},
		&models.ProductPowderType{},
		&models.ProductProteinOrigin{},
		&models.UserReview{},
	}
	for _, model := range dependents {
		var n int64
		require.NoError(t, db.Model(model).Where("product_id = ?", product.ID).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}

	var n int64
	require.NoError(t, db.Model(&models.ProductPowderType{}).Where("product_id = ?", kept.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "other products keep their links")
	require.NoError(t, db.Model(&models.PowderType{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "lookups survive")
}
