// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/database"
	"github.com/javajoker/protein-search/internal/models"
	"github.com/javajoker/protein-search/internal/utils"
)

const maxTitleLength = 255

type ReviewService struct {
	db *gorm.DB
}

// ReviewAuthor is the identity handed over by the authentication layer.
type ReviewAuthor struct {
	UserID   string
	Username string
}

type SubmitReviewRequest struct {
	Title      string `form:"title"`
	ReviewText string `form:"review_text"`
	Rating     int    `form:"rating" validate:"min=1,max=5"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// SubmitReview creates or replaces the author's review of a product. A rating
// outside 1..5 is dropped without writing anything.
func (s *ReviewService) SubmitReview(productID uint, author ReviewAuthor, req SubmitReviewRequest) error {
	var product models.Product
	if err := s.db.Select("id").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		logrus.WithFields(logrus.Fields{
			"product_id": productID,
			"user_id":    author.UserID,
			"rating":     req.Rating,
			"errors":     utils.GetValidationErrors(err),
		}).Debug("Discarding review with invalid rating")
		return nil
	}

	title := truncateRunes(strings.TrimSpace(req.Title), maxTitleLength)
	text := strings.TrimSpace(req.ReviewText)

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var review models.UserReview
		err := tx.Where("product_id = ? AND user_id = ?", productID, author.UserID).First(&review).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			review = models.UserReview{
				ProductID:  productID,
				UserID:     author.UserID,
				Username:   author.Username,
				Title:      title,
				ReviewText: text,
				Rating:     req.Rating,
				ReviewDate: datatypes.Date(time.Now()),
			}
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&review).Updates(map[string]interface{}{
			"title":       title,
			"review_text": text,
			"rating":      req.Rating,
		}).Error; err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		return nil
	})
}

// AverageRating is the mean rating rounded to one decimal, or nil when there
// are no ratings.
func AverageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	data := make(stats.Float64Data, 0, len(ratings))
	for _, r := range ratings {
		data = append(data, float64(r))
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return nil
	}
	return roundRating(mean)
}

// roundRating rounds to one decimal place, ties to even on the exact binary
// value.
func roundRating(value float64) *float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 1, 64), 64)
	if err != nil {
		return nil
	}
	return &rounded
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
