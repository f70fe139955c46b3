package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryVegetables ProductCategory = "VEGETABLES"
	CategoryFruits     ProductCategory = "FRUITS"
	CategoryGrains     ProductCategory = "GRAINS"
	CategoryLegumes    ProductCategory = "LEGUMES"
	CategoryDairy      ProductCategory = "DAIRY"
	CategoryLivestock  ProductCategory = "LIVESTOCK"
	CategoryPoultry    ProductCategory = "POULTRY"
	CategoryOther      ProductCategory = "OTHER"
)

var productCategories = map[ProductCategory]struct{}{
	CategoryVegetables: {}, CategoryFruits: {}, CategoryGrains: {}, CategoryLegumes: {},
	CategoryDairy: {}, CategoryLivestock: {}, CategoryPoultry: {}, CategoryOther: {},
}

func (c ProductCategory) Valid() bool {
	_, ok := productCategories[c]
	return ok
}

type ProductUnit string

const (
	UnitKG    ProductUnit = "KG"
	UnitTonne ProductUnit = "TONNE"
	UnitBag   ProductUnit = "BAG"
	UnitPiece ProductUnit = "PIECE"
	UnitLitre ProductUnit = "LITRE"
	UnitCrate ProductUnit = "CRATE"
)

func (u ProductUnit) Valid() bool {
	switch u {
	case UnitKG, UnitTonne, UnitBag, UnitPiece, UnitLitre, UnitCrate:
		return true
	}
	return false
}

type Product struct {
	gorm.Model
	Name         string          `gorm:"not null;index" json:"name"`
	Description  string          `json:"description"`
	Category     ProductCategory `gorm:"type:varchar(16);not null;index" json:"category"`
	Unit         ProductUnit     `gorm:"type:varchar(8);not null" json:"unit"`
	Quantity     float64         `gorm:"not null;default:0" json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pricePerUnit"`
	Location     string          `json:"location"`
	ImageURL     string          `json:"imageUrl"`
	Available    bool            `gorm:"not null;default:true;index" json:"available"`

	FarmerID uint         `gorm:"not null;index" json:"farmerId"`
	Farmer   *UserSummary `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
}
