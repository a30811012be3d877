package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint `gorm:"index;not null" json:"order_id"`

	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	Quantity int `gorm:"not null;default:1" json:"quantity"`
	// ราคา ณ เวลาที่สั่ง (snapshot) ห้ามแก้ภายหลัง
	Price Money  `gorm:"type:decimal(10,2);not null" json:"price"`
	Note  string `gorm:"size:255" json:"note"`
}

func (oi *OrderItem) Subtotal() Money { return oi.Price.Times(oi.Quantity) }
