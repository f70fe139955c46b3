package entity

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Agrovet struct {
	gorm.Model
	Name       string                      `gorm:"not null" json:"name"`
	Region     string                      `gorm:"index" json:"region"`
	Phone      string                      `json:"phone"`
	Location   string                      `json:"location"`
	Rating     float64                     `gorm:"not null;default:0" json:"rating"`
	Categories datatypes.JSONSlice[string] `json:"categories"`
	Services   datatypes.JSONSlice[string] `json:"services"`
}
