// internal/services/sheet_row.go
package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/javajoker/protein-search/internal/models"
	"github.com/javajoker/protein-search/internal/sheets"
)

// Spreadsheet column positions. This table is the only place that knows the
// sheet layout.
const (
	colBrand                  = 0
	colModel                  = 1
	colPowderTypes            = 3
	colCalories               = 5
	colProteinGrams           = 6
	colCarbsGrams             = 7
	colFatGrams               = 8
	colSugarFree              = 9
	colBCAAsGrams             = 10
	colServingsPerContainer   = 12
	colPricePerServing        = 13
	colUnitCountOz            = 14
	colItemWeightLbs          = 15
	colFlavorCount            = 17
	colAdditivesAndSweeteners = 19
	colGlutenFree             = 20
	colThirdPartyTested       = 21
	colScoopIncluded          = 22
	colLactoseFree            = 23
	colProteinOrigins         = 24
	colAmazonPrice            = 26
	colAvailableOnAmazon      = 27
	colAmazonRating           = 28
	colAmazonReviewCount      = 29
	colLink                   = 30
)

// ProductRecord is one cleaned spreadsheet row.
type ProductRecord struct {
	Brand string
	Model string
	Link  string

	// nil means the cell was empty and existing associations must be kept.
	PowderTypes    []string
	ProteinOrigins []string

	Nutrition models.NutritionFacts
	Serving   models.ServingInfo
	Features  models.Features
	Amazon    models.AmazonInfo
}

// ParseProductRow maps a raw row to a ProductRecord. ok is false when the row
// has no model and must be skipped.
func ParseProductRow(row sheets.Row) (record ProductRecord, ok bool) {
	model := row.Cell(colModel)
	if !truthy(model) || cellText(model) == "" {
		return ProductRecord{}, false
	}

	missing := decimal.NewFromInt(DefaultMissingNumber)

	record = ProductRecord{
		Brand:          cellText(row.Cell(colBrand)),
		Model:          cellText(model),
		Link:           cellText(row.Cell(colLink)),
		PowderTypes:    splitNames(row.Cell(colPowderTypes)),
		ProteinOrigins: splitNames(row.Cell(colProteinOrigins)),
		Nutrition: models.NutritionFacts{
			CaloriesPerScoop: CleanInt(row.Cell(colCalories), DefaultMissingNumber),
			ProteinGrams:     CleanDecimal(row.Cell(colProteinGrams), missing),
			CarbsGrams:       CleanDecimal(row.Cell(colCarbsGrams), missing),
			FatGrams:         CleanDecimal(row.Cell(colFatGrams), missing),
			BCAAsGrams:       CleanDecimal(row.Cell(colBCAAsGrams), missing),
			SugarFree:        CleanBoolean(row.Cell(colSugarFree)),
		},
		Serving: models.ServingInfo{
			ServingsPerContainer: CleanInt(row.Cell(colServingsPerContainer), DefaultMissingNumber),
			PricePerServing:      CleanDecimal(row.Cell(colPricePerServing), missing),
			UnitCountOz:          CleanDecimal(row.Cell(colUnitCountOz), missing),
			ItemWeightLbs:        CleanDecimal(row.Cell(colItemWeightLbs), missing),
		},
		Features: models.Features{
			AdditivesAndSweeteners: CleanBoolean(row.Cell(colAdditivesAndSweeteners)),
			GlutenFree:             CleanBoolean(row.Cell(colGlutenFree)),
			ThirdPartyTested:       CleanBoolean(row.Cell(colThirdPartyTested)),
			ScoopIncluded:          CleanBoolean(row.Cell(colScoopIncluded)),
			LactoseFree:            CleanBoolean(row.Cell(colLactoseFree)),
			FlavorCount:            CleanInt(row.Cell(colFlavorCount), DefaultFlavorCount),
		},
		Amazon: models.AmazonInfo{
			PriceUSD:          CleanDecimal(row.Cell(colAmazonPrice), missing),
			AvailableOnAmazon: CleanBoolean(row.Cell(colAvailableOnAmazon)),
			AmazonRating:      CleanDecimal(row.Cell(colAmazonRating), missing),
			AmazonReviewCount: CleanInt(row.Cell(colAmazonReviewCount), DefaultMissingNumber),
		},
	}
	return record, true
}

// splitNames splits a comma separated lookup cell into distinct, trimmed
// names. It returns nil for an absent or empty cell, and an empty slice for a
// cell holding only separators.
func splitNames(value interface{}) []string {
	if !truthy(value) {
		return nil
	}

	names := []string{}
	seen := make(map[string]bool)
	for _, name := range strings.Split(cellText(value), ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
