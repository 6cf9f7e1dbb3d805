// internal/models/review.go
package models

import (
	"gorm.io/datatypes"
)

// UserReview holds at most one review per user per product. ReviewDate is
// written once, when the review is first created.
type UserReview struct {
	BaseModel
	ProductID  uint           `json:"product_id" gorm:"not null;uniqueIndex:idx_review_product_user,priority:1"`
	UserID     string         `json:"user_id" gorm:"size:64;not null;uniqueIndex:idx_review_product_user,priority:2"`
	Username   string         `json:"username" gorm:"size:150"`
	Title      string         `json:"title" gorm:"size:255;not null"`
	ReviewText string         `json:"review_text" gorm:"type:text;not null"`
	Rating     int            `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	ReviewDate datatypes.Date `json:"review_date" gorm:"not null;index"`
}
