package entity

import (
	"time"
)

type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TotalItems และ TotalAmount คำนวณใหม่ทุกครั้ง ไม่เก็บลง DB
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) TotalAmount() Money {
	total := ZeroMoney()
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
