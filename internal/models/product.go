// internal/models/product.go
package models

// Product is identified by its (brand, model) pair. Everything hanging off it
// is removed with it.
type Product struct {
	BaseModel
	Brand string `json:"brand" gorm:"size:255;not null;uniqueIndex:idx_products_brand_model,priority:1"`
	Model string `json:"model" gorm:"size:255;not null;uniqueIndex:idx_products_brand_model,priority:2"`
	Link  string `json:"link" gorm:"type:text"`

	// Relationships
	NutritionFacts *NutritionFacts        `json:"nutrition_facts,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ServingInfo    *ServingInfo           `json:"serving_info,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Features       *Features              `json:"features,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	AmazonInfo     *AmazonInfo            `json:"amazon_info,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PowderTypes    []ProductPowderType    `json:"powder_types,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ProteinOrigins []ProductProteinOrigin `json:"protein_origins,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews        []UserReview           `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// PowderTypeNames flattens the loaded powder type associations.
func (p Product) PowderTypeNames() []string {
	names := make([]string, 0, len(p.PowderTypes))
	for _, link := range p.PowderTypes {
		names = append(names, link.PowderType.Name)
	}
	return names
}

// ProteinOriginNames flattens the loaded protein origin associations.
func (p Product) ProteinOriginNames() []string {
	names := make([]string, 0, len(p.ProteinOrigins))
	for _, link := range p.ProteinOrigins {
		names = append(names, link.ProteinOrigin.Name)
	}
	return names
}
