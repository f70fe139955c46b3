package entity

import (
	"gorm.io/gorm"
)

const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
	DeliveryCancelled = "cancelled"
)

type Delivery struct {
	gorm.Model
	OrderID uint   `gorm:"uniqueIndex;not null" json:"orderId"`
	Status  string `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	Notes   string `json:"notes"`
}
