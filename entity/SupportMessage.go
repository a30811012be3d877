package entity

import (
	"time"
)

type SupportMessage struct {
	ID       uint `gorm:"primarykey" json:"id"`
	TicketID uint `gorm:"index;not null" json:"ticket_id"`
	UserID   uint `gorm:"not null" json:"user_id"`
	User     User `json:"-"`

	Body      string    `gorm:"not null" json:"body"`
	IsStaff   bool      `gorm:"not null" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}
