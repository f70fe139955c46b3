package entity

import (
	"gorm.io/gorm"
)

const NotificationOrderUpdate = "order_update"

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"userId"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"not null" json:"message"`
	Type    string `gorm:"type:varchar(32);not null" json:"type"`
	Link    string `json:"link"`
	IsRead  bool   `gorm:"not null;default:false" json:"read"`
}
