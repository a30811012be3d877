package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderCode string `gorm:"size:20;uniqueIndex;not null" json:"order_code"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `json:"user,omitempty"` // preload เฉพาะ admin

	Status        OrderStatus   `gorm:"size:15;index;not null" json:"status"`
	PaymentMethod PaymentType   `gorm:"size:15;not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"size:15;not null" json:"payment_status"`

	// ราคารวมถูก freeze ตอนสร้าง ไม่คำนวณใหม่จาก items
	TotalAmount Money `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	DeliveryAddress       string     `gorm:"not null" json:"delivery_address"`
	Notes                 string     `json:"notes"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`

	Items []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
