// Package access resolves what a caller may do from their role. The policy is
// evaluated once per request by the auth middleware.
package access

import (
	"sabores/entity"
)

type Policy interface {
	Role() string
	CanViewOrder(o *entity.Order, actorID uint) bool
	CanViewAllOrders() bool
	CanManageOrders() bool
	CanMutateCatalog() bool
	CanViewTicket(t *entity.SupportTicket, actorID uint) bool
	CanManageTickets() bool
	CanManageUsers() bool
}

type Customer struct{}

func (Customer) Role() string { return entity.RoleCustomer }
func (Customer) CanViewOrder(o *entity.Order, actorID uint) bool {
	return o != nil && o.UserID == actorID
}
func (Customer) CanViewAllOrders() bool { return false }
func (Customer) CanManageOrders() bool  { return false }
func (Customer) CanMutateCatalog() bool { return false }
func (Customer) CanViewTicket(t *entity.SupportTicket, actorID uint) bool {
	return t != nil && t.UserID == actorID
}
func (Customer) CanManageTickets() bool { return false }
func (Customer) CanManageUsers() bool   { return false }

// Staff runs the kitchen and the front desk: every order, catalog and ticket.
type Staff struct{}

func (Staff) Role() string                                       { return entity.RoleStaff }
func (Staff) CanViewOrder(o *entity.Order, _ uint) bool          { return o != nil }
func (Staff) CanViewAllOrders() bool                             { return true }
func (Staff) CanManageOrders() bool                              { return true }
func (Staff) CanMutateCatalog() bool                             { return true }
func (Staff) CanViewTicket(t *entity.SupportTicket, _ uint) bool { return t != nil }
func (Staff) CanManageTickets() bool                             { return true }
func (Staff) CanManageUsers() bool                               { return false }

// Admin is Staff plus user administration.
type Admin struct{ Staff }

func (Admin) Role() string         { return entity.RoleAdmin }
func (Admin) CanManageUsers() bool { return true }

// For returns the policy for role. Unknown roles get the customer policy.
func For(role string) Policy {
	switch role {
	case entity.RoleAdmin:
		return Admin{}
	case entity.RoleStaff:
		return Staff{}
	default:
		return Customer{}
	}
}
