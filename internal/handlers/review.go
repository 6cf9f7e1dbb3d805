// internal/handlers/review.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/protein-search/internal/services"
	"github.com/javajoker/protein-search/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// POST /products/:id/review/
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	// A rating that is not a number is treated like an out-of-range one.
	rating, err := strconv.Atoi(strings.TrimSpace(c.PostForm("rating")))
	if err != nil {
		rating = 0
	}

	req := services.SubmitReviewRequest{
		Title:      c.PostForm("title"),
		ReviewText: c.PostForm("review_text"),
		Rating:     rating,
	}
	author := services.ReviewAuthor{
		UserID:   userID,
		Username: utils.GetUsernameFromContext(c),
	}

	if err := h.reviewService.SubmitReview(productID, author, req); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		logrus.WithError(err).WithField("product_id", productID).Error("Failed to submit review")
		utils.InternalErrorResponse(c, "")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/products/%d/", productID))
}
