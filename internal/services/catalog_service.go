// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// FeatureFlags lists the Features columns that can be filtered on.
var FeatureFlags = []string{
	"additives_and_sweeteners",
	"lactose_free",
	"gluten_free",
	"third_party_tested",
	"scoop_included",
}

type CatalogService struct {
	db *gorm.DB
}

// ProductFilter holds the optional catalog filters. Nil pointers, empty
// slices and false flags place no constraint.
type ProductFilter struct {
	PowderTypeIDs    []uint
	ProteinOriginIDs []uint

	MaxCalories *int
	MinProtein  *decimal.Decimal
	MaxCarbs    *decimal.Decimal
	MaxFats     *decimal.Decimal
	MaxBCAAs    *decimal.Decimal
	SugarFree   bool

	MinServings *int
	MaxPrice    *decimal.Decimal

	AdditivesAndSweeteners bool
	LactoseFree            bool
	GlutenFree             bool
	ThirdPartyTested       bool
	ScoopIncluded          bool
}

// Predicate narrows a product query. Predicates are combined with AND, so
// the order they are applied in does not matter.
type Predicate = func(*gorm.DB) *gorm.DB

type ProductSummary struct {
	models.Product
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int64    `json:"review_count"`
}

type ProductListing struct {
	Products               []ProductSummary       `json:"products"`
	PowderTypes            []models.PowderType    `json:"powder_types"`
	ProteinOrigins         []models.ProteinOrigin `json:"protein_origins"`
	SelectedPowderTypes    []uint                 `json:"selected_powder_types"`
	SelectedProteinOrigins []uint                 `json:"selected_protein_origins"`
	Features               []string               `json:"features"`
}

type ProductDetail struct {
	models.Product
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Predicates turns every filter that is set into one predicate.
func (f ProductFilter) Predicates() []Predicate {
	var preds []Predicate

	// Each selected lookup narrows the result on its own: a product must be
	// linked to all of them.
	for _, id := range f.PowderTypeIDs {
		preds = append(preds, linkedTo("product_powder_types", "powder_type_id", id))
	}
	for _, id := range f.ProteinOriginIDs {
		preds = append(preds, linkedTo("product_protein_origins", "protein_origin_id", id))
	}

	if f.MaxCalories != nil {
		preds = append(preds, extensionWhere("nutrition_facts", "calories_per_scoop <= ?", *f.MaxCalories))
	}
	if f.MinProtein != nil {
		preds = append(preds, extensionWhere("nutrition_facts", "protein_grams >= ?", *f.MinProtein))
	}
	if f.MaxCarbs != nil {
		preds = append(preds, extensionWhere("nutrition_facts", "carbs_grams <= ?", *f.MaxCarbs))
	}
	if f.MaxFats != nil {
		preds = append(preds, extensionWhere("nutrition_facts", "fat_grams <= ?", *f.MaxFats))
	}
	if f.MaxBCAAs != nil {
		preds = append(preds, extensionWhere("nutrition_facts", "bcaas_grams <= ?", *f.MaxBCAAs))
	}
	if f.SugarFree {
		preds = append(preds, extensionWhere("nutrition_facts", "sugar_free = ?", true))
	}

	if f.MinServings != nil {
		preds = append(preds, extensionWhere("serving_infos", "servings_per_container >= ?", *f.MinServings))
	}
	if f.MaxPrice != nil {
		preds = append(preds, extensionWhere("serving_infos", "price_per_serving <= ?", *f.MaxPrice))
	}

	flags := map[string]bool{
		"additives_and_sweeteners": f.AdditivesAndSweeteners,
		"lactose_free":             f.LactoseFree,
		"gluten_free":              f.GlutenFree,
		"third_party_tested":       f.ThirdPartyTested,
		"scoop_included":           f.ScoopIncluded,
	}
	for _, column := range FeatureFlags {
		if flags[column] {
			preds = append(preds, extensionWhere("features", column+" = ?", true))
		}
	}

	return preds
}

// Subqueries keep the outer query free of joins, so a product linked to many
// lookups is still returned once.
func linkedTo(joinTable, column string, id uint) Predicate {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("products.id IN (SELECT product_id FROM "+joinTable+" WHERE "+column+" = ?)", id)
	}
}

func extensionWhere(table, condition string, value interface{}) Predicate {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("products.id IN (SELECT product_id FROM "+table+" WHERE "+condition+")", value)
	}
}

func preloadDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("NutritionFacts").
		Preload("ServingInfo").
		Preload("Features").
		Preload("AmazonInfo").
		Preload("PowderTypes.PowderType").
		Preload("ProteinOrigins.ProteinOrigin")
}

// ListProducts returns the products matching every filter, ordered by brand
// and model, together with the lookup values used to build filter choices.
func (s *CatalogService) ListProducts(filter ProductFilter) (*ProductListing, error) {
	var products []models.Product
	query := s.db.Model(&models.Product{}).
		Scopes(filter.Predicates()...).
		Scopes(preloadDetails).
		Order("products.brand ASC").
		Order("products.model ASC")

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	ratings, err := s.ratingsFor(products)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		agg := ratings[product.ID]
		summary := ProductSummary{Product: product, ReviewCount: agg.ReviewCount}
		if agg.ReviewCount > 0 {
			summary.AverageRating = roundRating(float64(agg.RatingTotal) / float64(agg.ReviewCount))
		}
		summaries = append(summaries, summary)
	}

	powderTypes, err := s.ListPowderTypes()
	if err != nil {
		return nil, err
	}
	proteinOrigins, err := s.ListProteinOrigins()
	if err != nil {
		return nil, err
	}

	return &ProductListing{
		Products:               summaries,
		PowderTypes:            powderTypes,
		ProteinOrigins:         proteinOrigins,
		SelectedPowderTypes:    filter.PowderTypeIDs,
		SelectedProteinOrigins: filter.ProteinOriginIDs,
		Features:               FeatureFlags,
	}, nil
}

type ratingAggregate struct {
	ProductID   uint
	RatingTotal int64
	ReviewCount int64
}

func (s *CatalogService) ratingsFor(products []models.Product) (map[uint]ratingAggregate, error) {
	result := make(map[uint]ratingAggregate, len(products))
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	var aggs []ratingAggregate
	if err := s.db.Model(&models.UserReview{}).
		Select("product_id, SUM(rating) AS rating_total, COUNT(*) AS review_count").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&aggs).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	for _, agg := range aggs {
		result[agg.ProductID] = agg
	}
	return result, nil
}

// GetProduct loads a product with its extensions and its reviews, newest first.
func (s *CatalogService) GetProduct(id uint) (*ProductDetail, error) {
	var product models.Product
	err := s.db.Scopes(preloadDetails).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_date DESC").Order("id DESC")
		}).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	ratings := make([]int, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		ratings = append(ratings, review.Rating)
	}

	return &ProductDetail{
		Product:       product,
		AverageRating: AverageRating(ratings),
		ReviewCount:   len(product.Reviews),
	}, nil
}

func (s *CatalogService) ListPowderTypes() ([]models.PowderType, error) {
	var powderTypes []models.PowderType
	if err := s.db.Order("id").Find(&powderTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch powder types: %w", err)
	}
	return powderTypes, nil
}

func (s *CatalogService) ListProteinOrigins() ([]models.ProteinOrigin, error) {
	var origins []models.ProteinOrigin
	if err := s.db.Order("id").Find(&origins).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch protein origins: %w", err)
	}
	return origins, nil
}
