package entity

import (
	"time"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	return s == TicketOpen || s == TicketInProgress || s == TicketResolved || s == TicketClosed
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

func (p TicketPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type SupportTicket struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `json:"-"`

	// optional: ticket อาจไม่ผูกกับ order
	OrderID *uint  `gorm:"index" json:"order_id"`
	Order   *Order `json:"-"`

	Subject   string         `gorm:"size:200;not null" json:"subject"`
	Message   string         `gorm:"not null" json:"message"`
	Status    TicketStatus   `gorm:"size:20;not null" json:"status"`
	Priority  TicketPriority `gorm:"size:20;not null" json:"priority"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Messages []SupportMessage `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE;" json:"messages,omitempty"`
}
