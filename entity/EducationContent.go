package entity

import (
	"gorm.io/gorm"
)

type EducationContent struct {
	gorm.Model
	Title     string `gorm:"not null" json:"title"`
	Body      string `json:"body"`
	Category  string `gorm:"index" json:"category"`
	MediaURL  string `json:"mediaUrl"`
	IsPremium bool   `gorm:"not null;default:false" json:"isPremium"`
}
