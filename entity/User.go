package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:15" json:"phone"`
	Address  string `json:"address"`
	Role     string `gorm:"size:10;not null;default:customer" json:"role"`
	IsActive bool   `gorm:"not null" json:"is_active"`

	// Relations: preload เฉพาะตอนจำเป็น
	Cart           *Cart           `json:"-"`
	Orders         []Order         `json:"-"`
	PaymentMethods []PaymentMethod `json:"-"`
	SupportTickets []SupportTicket `json:"-"`
}

func IsValidRole(r string) bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}
