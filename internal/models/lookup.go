// internal/models/lookup.go
package models

type PowderType struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

type ProteinOrigin struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

type ProductPowderType struct {
	ID           uint `json:"-" gorm:"primaryKey;autoIncrement"`
	ProductID    uint `json:"-" gorm:"not null;uniqueIndex:idx_product_powder_type,priority:1"`
	PowderTypeID uint `json:"-" gorm:"not null;uniqueIndex:idx_product_powder_type,priority:2;index"`

	PowderType PowderType `json:"powder_type" gorm:"foreignKey:PowderTypeID;constraint:OnDelete:CASCADE"`
}

type ProductProteinOrigin struct {
	ID              uint `json:"-" gorm:"primaryKey;autoIncrement"`
	ProductID       uint `json:"-" gorm:"not null;uniqueIndex:idx_product_protein_origin,priority:1"`
	ProteinOriginID uint `json:"-" gorm:"not null;uniqueIndex:idx_product_protein_origin,priority:2;index"`

	ProteinOrigin ProteinOrigin `json:"protein_origin" gorm:"foreignKey:ProteinOriginID;constraint:OnDelete:CASCADE"`
}
