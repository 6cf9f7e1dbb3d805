// internal/services/review_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	service   *ReviewService
	productID uint
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewReviewService(suite.db)

	product, err := NewImportService(suite.db).ImportRecord(ProductRecord{Brand: "Brand", Model: "Model"})
	require.NoError(suite.T(), err)
	suite.productID = product.ID
}

func (suite *ReviewServiceTestSuite) reviews() []models.UserReview {
	var reviews []models.UserReview
	require.NoError(suite.T(), suite.db.Where("product_id = ?", suite.productID).Find(&reviews).Error)
	return reviews
}

var alice = ReviewAuthor{UserID: "user-1", Username: "alice"}

func (suite *ReviewServiceTestSuite) TestFirstSubmissionCreatesReview() {
	err := suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{
		Title:      "  Mixes well  ",
		ReviewText: " No clumps. ",
		Rating:     3,
	})
	require.NoError(suite.T(), err)

	reviews := suite.reviews()
	require.Len(suite.T(), reviews, 1)
	assert.Equal(suite.T(), "user-1", reviews[0].UserID)
	assert.Equal(suite.T(), "alice", reviews[0].Username)
	assert.Equal(suite.T(), "Mixes well", reviews[0].Title)
	assert.Equal(suite.T(), "No clumps.", reviews[0].ReviewText)
	assert.Equal(suite.T(), 3, reviews[0].Rating)
	assert.Equal(suite.T(), time.Now().Format("2006-01-02"), time.Time(reviews[0].ReviewDate).Format("2006-01-02"))
}

func (suite *ReviewServiceTestSuite) TestSecondSubmissionUpdatesInPlace() {
	require.NoError(suite.T(), suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{
		Title: "First", ReviewText: "ok", Rating: 3,
	}))

	// Move the original date back so an overwrite would be visible.
	original := datatypes.Date(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), suite.db.Model(&models.UserReview{}).
		Where("product_id = ? AND user_id = ?", suite.productID, alice.UserID).
		Update("review_date", original).Error)

	require.NoError(suite.T(), suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{
		Title: "Second", ReviewText: "better", Rating: 5,
	}))

	reviews := suite.reviews()
	require.Len(suite.T(), reviews, 1)
	assert.Equal(suite.T(), 5, reviews[0].Rating)
	assert.Equal(suite.T(), "Second", reviews[0].Title)
	assert.Equal(suite.T(), "better", reviews[0].ReviewText)
	assert.Equal(suite.T(), "2024-01-15", time.Time(reviews[0].ReviewDate).Format("2006-01-02"))
}

func (suite *ReviewServiceTestSuite) TestInvalidRatingWritesNothing() {
	for _, rating := range []int{0, 6, -1} {
		err := suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{
			Title: "Bad", ReviewText: "bad", Rating: rating,
		})
		assert.NoError(suite.T(), err)
	}
	assert.Empty(suite.T(), suite.reviews())

	require.NoError(suite.T(), suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{
		Title: "Good", ReviewText: "good", Rating: 4,
	}))
	require.NoError(suite.T(), suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{
		Title: "Worse", ReviewText: "worse", Rating: 6,
	}))

	reviews := suite.reviews()
	require.Len(suite.T(), reviews, 1)
	assert.Equal(suite.T(), 4, reviews[0].Rating)
	assert.Equal(suite.T(), "Good", reviews[0].Title)
}

func (suite *ReviewServiceTestSuite) TestUsersReviewIndependently() {
	bob := ReviewAuthor{UserID: "user-2", Username: "bob"}
	require.NoError(suite.T(), suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{Title: "a", Rating: 2}))
	require.NoError(suite.T(), suite.service.SubmitReview(suite.productID, bob, SubmitReviewRequest{Title: "b", Rating: 4}))

	assert.Len(suite.T(), suite.reviews(), 2)
}

func (suite *ReviewServiceTestSuite) TestMissingProduct() {
	err := suite.service.SubmitReview(suite.productID+100, alice, SubmitReviewRequest{Title: "x", Rating: 3})
	assert.ErrorIs(suite.T(), err, ErrProductNotFound)

	// The product check comes before rating validation.
	err = suite.service.SubmitReview(suite.productID+100, alice, SubmitReviewRequest{Title: "x", Rating: 9})
	assert.ErrorIs(suite.T(), err, ErrProductNotFound)
}

func (suite *ReviewServiceTestSuite) TestLongTitleIsTruncated() {
	require.NoError(suite.T(), suite.service.SubmitReview(suite.productID, alice, SubmitReviewRequest{
		Title: strings.Repeat("é", 300), Rating: 5,
	}))

	reviews := suite.reviews()
	require.Len(suite.T(), reviews, 1)
	assert.Equal(suite.T(), 255, len([]rune(reviews[0].Title)))
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}

func TestAverageRating(t *testing.T) {
	avg := AverageRating([]int{3, 4, 5})
	require.NotNil(t, avg)
	assert.Equal(t, 4.0, *avg)

	avg = AverageRating([]int{5, 4})
	require.NotNil(t, avg)
	assert.Equal(t, 4.5, *avg)

	avg = AverageRating([]int{1, 2, 2})
	require.NotNil(t, avg)
	assert.Equal(t, 1.7, *avg)

	// Ties round to even on the binary value.
	avg = AverageRating([]int{1, 1, 1, 2})
	require.NotNil(t, avg)
	assert.Equal(t, 1.2, *avg)

	avg = AverageRating([]int{3, 3, 3, 4})
	require.NotNil(t, avg)
	assert.Equal(t, 3.2, *avg)

	avg = AverageRating([]int{4, 4, 4, 5})
	require.NotNil(t, avg)
	assert.Equal(t, 4.2, *avg)

	ratings := []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	avg = AverageRating(ratings)
	require.NotNil(t, avg)
	assert.Equal(t, 2.5, *avg, "49/20")

	assert.Nil(t, AverageRating(nil))
	assert.Nil(t, AverageRating([]int{}))
}
