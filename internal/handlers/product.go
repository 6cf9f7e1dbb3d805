// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/javajoker/protein-search/internal/i18n"
	"github.com/javajoker/protein-search/internal/services"
	"github.com/javajoker/protein-search/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GET /products/
func (h *ProductHandler) ListProducts(c *gin.Context) {
	listing, err := h.catalogService.ListProducts(ParseProductFilter(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponseWithMeta(c, listing, gin.H{"count": len(listing.Products)})
}

// GET /products/:id/
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, product)
}

// productIDParam writes a 400 response and returns false when :id is not a
// positive integer.
func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalidID), nil)
		return 0, false
	}
	return uint(id), true
}

// ParseProductFilter reads the listing filters from the query string. Values
// that do not parse are ignored.
func ParseProductFilter(c *gin.Context) services.ProductFilter {
	return services.ProductFilter{
		PowderTypeIDs:    queryIDs(c, "powder_type"),
		ProteinOriginIDs: queryIDs(c, "protein_origin"),

		MaxCalories: queryInt(c, "max_calories"),
		MinProtein:  queryDecimal(c, "min_protein"),
		MaxCarbs:    queryDecimal(c, "max_carbs"),
		MaxFats:     queryDecimal(c, "max_fats"),
		MaxBCAAs:    queryDecimal(c, "max_bcaas"),
		SugarFree:   queryFlag(c, "sugar_free"),

		MinServings: queryInt(c, "min_servings"),
		MaxPrice:    queryDecimal(c, "max_price"),

		AdditivesAndSweeteners: queryFlag(c, "additives_and_sweeteners"),
		LactoseFree:            queryFlag(c, "lactose_free"),
		GlutenFree:             queryFlag(c, "gluten_free"),
		ThirdPartyTested:       queryFlag(c, "third_party_tested"),
		ScoopIncluded:          queryFlag(c, "scoop_included"),
	}
}

func queryIDs(c *gin.Context, key string) []uint {
	var ids []uint
	seen := make(map[uint]bool)
	for _, raw := range c.QueryArray(key) {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil || id == 0 || seen[uint(id)] {
			continue
		}
		seen[uint(id)] = true
		ids = append(ids, uint(id))
	}
	return ids
}

func queryInt(c *gin.Context, key string) *int {
	raw := strings.TrimSpace(lastQuery(c, key))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func queryDecimal(c *gin.Context, key string) *decimal.Decimal {
	raw := strings.TrimSpace(lastQuery(c, key))
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &value
}

func queryFlag(c *gin.Context, key string) bool {
	return lastQuery(c, key) != ""
}

// lastQuery returns the last value given for a single-valued parameter.
func lastQuery(c *gin.Context, key string) string {
	values := c.QueryArray(key)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
