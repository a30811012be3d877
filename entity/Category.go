package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`

	MenuItems []MenuItem `json:"-"`
}
