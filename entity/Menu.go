package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name            string `gorm:"size:100;not null" json:"name"`
	Description     string `json:"description"`
	Price           Money  `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable     bool   `gorm:"not null" json:"is_available"`
	IsFeatured      bool   `gorm:"not null;default:false" json:"is_featured"`
	PreparationTime int    `gorm:"not null;default:15" json:"preparation_time"` // นาที

	CategoryID uint      `json:"category_id"`
	Category   *Category `json:"category,omitempty"` // preload เฉพาะตอน list/detail
}
