// internal/services/sheet_row_test.go
package services

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/protein-search/internal/sheets"
)

func fullRow() sheets.Row {
	row := make(sheets.Row, colLink+1)
	row[colBrand] = "Optimum Nutrition"
	row[colModel] = "Gold Standard 100% Whey"
	row[colPowderTypes] = "Whey Isolate, Whey Concentrate"
	row[colCalories] = json.Number("120")
	row[colProteinGrams] = json.Number("24")
	row[colCarbsGrams] = json.Number("3")
	row[colFatGrams] = json.Number("1.5")
	row[colSugarFree] = "Yes"
	row[colBCAAsGrams] = json.Number("5.5")
	row[colServingsPerContainer] = json.Number("74")
	row[colPricePerServing] = json.Number("0.95")
	row[colUnitCountOz] = json.Number("80")
	row[colItemWeightLbs] = json.Number("5")
	row[colFlavorCount] = json.Number("20")
	row[colAdditivesAndSweeteners] = "Yes"
	row[colGlutenFree] = "Yes"
	row[colThirdPartyTested] = "No"
	row[colScoopIncluded] = "yes"
	row[colLactoseFree] = nil
	row[colProteinOrigins] = "Milk"
	row[colAmazonPrice] = json.Number("69.99")
	row[colAvailableOnAmazon] = "Yes"
	row[colAmazonRating] = json.Number("4.7")
	row[colAmazonReviewCount] = json.Number("51234")
	row[colLink] = "https://example.com/gold-standard"
	return row
}

func TestParseProductRow(t *testing.T) {
	record, ok := ParseProductRow(fullRow())
	require.True(t, ok)

	assert.Equal(t, "Optimum Nutrition", record.Brand)
	assert.Equal(t, "Gold Standard 100% Whey", record.Model)
	assert.Equal(t, "https://example.com/gold-standard", record.Link)
	assert.Equal(t, []string{"Whey Isolate", "Whey Concentrate"}, record.PowderTypes)
	assert.Equal(t, []string{"Milk"}, record.ProteinOrigins)

	assert.Equal(t, 120, record.Nutrition.CaloriesPerScoop)
	assert.True(t, decimal.NewFromInt(24).Equal(record.Nutrition.ProteinGrams))
	assert.True(t, decimal.RequireFromString("1.5").Equal(record.Nutrition.FatGrams))
	assert.True(t, record.Nutrition.SugarFree)

	assert.Equal(t, 74, record.Serving.ServingsPerContainer)
	assert.True(t, decimal.RequireFromString("0.95").Equal(record.Serving.PricePerServing))

	assert.True(t, record.Features.AdditivesAndSweeteners)
	assert.False(t, record.Features.ThirdPartyTested)
	assert.True(t, record.Features.ScoopIncluded)
	assert.False(t, record.Features.LactoseFree)
	assert.Equal(t, 20, record.Features.FlavorCount)

	assert.True(t, decimal.RequireFromString("69.99").Equal(record.Amazon.PriceUSD))
	assert.True(t, record.Amazon.AvailableOnAmazon)
	assert.Equal(t, 51234, record.Amazon.AmazonReviewCount)
}

func TestParseProductRowDefaults(t *testing.T) {
	row := sheets.Row{"Brand", "Model"}

	record, ok := ParseProductRow(row)
	require.True(t, ok)

	missing := decimal.NewFromInt(DefaultMissingNumber)
	assert.Equal(t, DefaultMissingNumber, record.Nutrition.CaloriesPerScoop)
	assert.True(t, missing.Equal(record.Nutrition.ProteinGrams))
	assert.True(t, missing.Equal(record.Serving.PricePerServing))
	assert.True(t, missing.Equal(record.Amazon.AmazonRating))
	assert.Equal(t, DefaultMissingNumber, record.Amazon.AmazonReviewCount)
	assert.Equal(t, DefaultFlavorCount, record.Features.FlavorCount)
	assert.False(t, record.Nutrition.SugarFree)
	assert.Nil(t, record.PowderTypes)
	assert.Nil(t, record.ProteinOrigins)
	assert.Empty(t, record.Link)
}

func TestParseProductRowSkipsMissingModel(t *testing.T) {
	for _, model := range []interface{}{nil, "", "   "} {
		row := fullRow()
		row[colModel] = model
		_, ok := ParseProductRow(row)
		assert.False(t, ok, "model %#v", model)
	}

	_, ok := ParseProductRow(sheets.Row{"Brand only"})
	assert.False(t, ok)
}

func TestParseProductRowDegradesBadCells(t *testing.T) {
	row := fullRow()
	row[colCalories] = "about 120"
	row[colProteinGrams] = "N/A"
	row[colFlavorCount] = "many"

	record, ok := ParseProductRow(row)
	require.True(t, ok)

	assert.Equal(t, DefaultMissingNumber, record.Nutrition.CaloriesPerScoop)
	assert.True(t, decimal.NewFromInt(DefaultMissingNumber).Equal(record.Nutrition.ProteinGrams))
	assert.Equal(t, DefaultFlavorCount, record.Features.FlavorCount)
	// Other cells are unaffected.
	assert.True(t, decimal.NewFromInt(3).Equal(record.Nutrition.CarbsGrams))
}
