package entity

import (
	"time"
)

// PaymentType ใช้ทั้งกับ Order.PaymentMethod และ PaymentMethod.Type
type PaymentType string

const (
	PayCash     PaymentType = "cash"
	PayCard     PaymentType = "card"
	PayTransfer PaymentType = "transfer"
)

var PaymentTypes = []PaymentType{PayCash, PayCard, PayTransfer}

func (t PaymentType) Valid() bool {
	return t == PayCash || t == PayCard || t == PayTransfer
}

func (t PaymentType) Display() string {
	switch t {
	case PayCash:
		return "Cash"
	case PayCard:
		return "Credit/Debit card"
	case PayTransfer:
		return "Bank transfer"
	}
	return string(t)
}

// PaymentMethod is a saved method on the user's profile. Only the last four
// card digits are ever stored.
type PaymentMethod struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	UserID     uint        `gorm:"index;not null" json:"user_id"`
	User       User        `json:"-"`
	Type       PaymentType `gorm:"size:20;not null" json:"type"`
	CardLast4  string      `gorm:"size:4" json:"card_last4,omitempty"`
	HolderName string      `gorm:"size:100" json:"holder_name,omitempty"`
	Expiry     string      `gorm:"size:5" json:"expiry,omitempty"` // MM/YY
	IsDefault  bool        `gorm:"not null" json:"is_default"`
	CreatedAt  time.Time   `json:"created_at"`
}
