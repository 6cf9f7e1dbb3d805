// internal/models/extensions.go
package models

import (
	"github.com/shopspring/decimal"
)

// The one-to-one extensions share their primary key with Product. Missing
// spreadsheet values are stored as the importer's defaults, never as NULL.

type NutritionFacts struct {
	ProductID        uint            `json:"-" gorm:"primaryKey;autoIncrement:false"`
	CaloriesPerScoop int             `json:"calories_per_scoop" gorm:"not null"`
	ProteinGrams     decimal.Decimal `json:"protein_grams" gorm:"type:decimal(5,2);not null"`
	CarbsGrams       decimal.Decimal `json:"carbs_grams" gorm:"type:decimal(5,2);not null"`
	FatGrams         decimal.Decimal `json:"fat_grams" gorm:"type:decimal(5,2);not null"`
	BCAAsGrams       decimal.Decimal `json:"bcaas_grams" gorm:"column:bcaas_grams;type:decimal(5,2);not null"`
	SugarFree        bool            `json:"sugar_free" gorm:"not null"`
}

type ServingInfo struct {
	ProductID            uint            `json:"-" gorm:"primaryKey;autoIncrement:false"`
	ServingsPerContainer int             `json:"servings_per_container" gorm:"not null"`
	PricePerServing      decimal.Decimal `json:"price_per_serving" gorm:"type:decimal(5,2);not null"`
	UnitCountOz          decimal.Decimal `json:"unit_count_oz" gorm:"type:decimal(5,1);not null"`
	ItemWeightLbs        decimal.Decimal `json:"item_weight_lbs" gorm:"type:decimal(5,2);not null"`
}

type Features struct {
	ProductID              uint `json:"-" gorm:"primaryKey;autoIncrement:false"`
	AdditivesAndSweeteners bool `json:"additives_and_sweeteners" gorm:"not null"`
	GlutenFree             bool `json:"gluten_free" gorm:"not null"`
	ThirdPartyTested       bool `json:"third_party_tested" gorm:"not null"`
	ScoopIncluded          bool `json:"scoop_included" gorm:"not null"`
	LactoseFree            bool `json:"lactose_free" gorm:"not null"`
	FlavorCount            int  `json:"flavor_count" gorm:"not null"`
}

type AmazonInfo struct {
	ProductID         uint            `json:"-" gorm:"primaryKey;autoIncrement:false"`
	PriceUSD          decimal.Decimal `json:"price_usd" gorm:"column:price_usd;type:decimal(7,2);not null"`
	AvailableOnAmazon bool            `json:"available_on_amazon" gorm:"not null"`
	AmazonRating      decimal.Decimal `json:"amazon_rating" gorm:"type:decimal(4,2);not null"`
	AmazonReviewCount int             `json:"amazon_review_count" gorm:"not null"`
}
