package entity

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderOnTheWay  OrderStatus = "on_the_way"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses เรียงตามลำดับ lifecycle
var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderOnTheWay, OrderDelivered, OrderCancelled,
}

// ActiveOrderStatuses are the statuses counted as "pending" on the dashboard.
var ActiveOrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderOnTheWay,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) Display() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderConfirmed:
		return "Confirmed"
	case OrderPreparing:
		return "Preparing"
	case OrderOnTheWay:
		return "On the way"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	}
	return string(s)
}
