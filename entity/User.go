package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`

	// set once at registration; no update path writes it
	Role Role `gorm:"type:varchar(16);not null;index" json:"role"`

	Subscription *Subscription `json:"subscription,omitempty"`
	Products     []Product     `gorm:"foreignKey:FarmerID" json:"-"`
}

// UserSummary is the contact projection of a user embedded in products and orders.
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

func (UserSummary) TableName() string { return "users" }
