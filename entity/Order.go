package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"orderNumber"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"totalAmount"`
	Commission      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commission"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null;default:PENDING;index" json:"status"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Notes           string          `json:"notes"`

	BuyerID  uint         `gorm:"not null;index" json:"buyerId"`
	Buyer    *UserSummary `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	SellerID uint         `gorm:"not null;index" json:"sellerId"`
	Seller   *UserSummary `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	// preloaded for listings and the created-order response
	Items    []OrderItem `json:"items"`
	Delivery *Delivery   `json:"delivery,omitempty"`
}

// SellerNet is what the farmer keeps after the platform commission.
func (o *Order) SellerNet() decimal.Decimal {
	return o.TotalAmount.Sub(o.Commission)
}
