package entity

import (
	"time"
)

// CartItem is hard-deleted; a soft-delete tombstone would collide with the
// (cart_id, menu_item_id) unique index on re-add.
type CartItem struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	CartID     uint     `gorm:"not null;uniqueIndex:idx_cart_menu_item" json:"cart_id"`
	Cart       Cart     `json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_menu_item" json:"menu_item_id"`
	MenuItem   MenuItem `json:"-"`

	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Note      string    `gorm:"size:255" json:"note"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal ใช้ราคาเมนูปัจจุบันเสมอ (MenuItem ต้อง preload)
func (ci *CartItem) Subtotal() Money {
	return ci.MenuItem.Price.Times(ci.Quantity)
}
