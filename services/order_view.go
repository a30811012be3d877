package services

import (
	"time"

	"sabores/entity"
)

type OrderItemView struct {
	ID           uint         `json:"id"`
	MenuItemID   uint         `json:"menu_item_id"`
	MenuItemName string       `json:"menu_item_name"`
	Quantity     int          `json:"quantity"`
	Price        entity.Money `json:"price"`
	Subtotal     entity.Money `json:"subtotal"`
	Note         string       `json:"note"`
}

type CustomerBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderView struct {
	ID                    uint                 `json:"id"`
	OrderCode             string               `json:"order_code"`
	UserID                uint                 `json:"user_id"`
	Customer              *CustomerBrief       `json:"customer,omitempty"`
	Status                entity.OrderStatus   `json:"status"`
	StatusDisplay         string               `json:"status_display"`
	PaymentMethod         entity.PaymentType   `json:"payment_method"`
	PaymentMethodDisplay  string               `json:"payment_method_display"`
	PaymentStatus         entity.PaymentStatus `json:"payment_status"`
	PaymentStatusDisplay  string               `json:"payment_status_display"`
	TotalAmount           entity.Money         `json:"total_amount"`
	DeliveryAddress       string               `json:"delivery_address"`
	Notes                 string               `json:"notes"`
	EstimatedDeliveryTime *time.Time           `json:"estimated_delivery_time"`
	Items                 []OrderItemView      `json:"items"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type OrderPage struct {
	Items []OrderView `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// NewOrderView ใช้ราคาที่ freeze ไว้ใน order item เท่านั้น
func NewOrderView(o *entity.Order) *OrderView {
	v := &OrderView{
		ID:                    o.ID,
		OrderCode:             o.OrderCode,
		UserID:                o.UserID,
		Status:                o.Status,
		StatusDisplay:         o.Status.Display(),
		PaymentMethod:         o.PaymentMethod,
		PaymentMethodDisplay:  o.PaymentMethod.Display(),
		PaymentStatus:         o.PaymentStatus,
		PaymentStatusDisplay:  o.PaymentStatus.Display(),
		TotalAmount:           o.TotalAmount,
		DeliveryAddress:       o.DeliveryAddress,
		Notes:                 o.Notes,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		Items:                 make([]OrderItemView, 0, len(o.Items)),
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
	if o.User != nil {
		v.Customer = &CustomerBrief{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email, Phone: o.User.Phone}
	}
	for i := range o.Items {
		it := &o.Items[i]
		v.Items = append(v.Items, OrderItemView{
			ID:           it.ID,
			MenuItemID:   it.MenuItemID,
			MenuItemName: it.MenuItem.Name,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Subtotal:     it.Subtotal(),
			Note:         it.Note,
		})
	}
	return v
}
