package model

import "time"

// OrderID uniquely identifies an order
type OrderID int64

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusOpen, OrderStatusPreparing, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusOpen:
		return to == OrderStatusPreparing || to == OrderStatusCancelled
	case OrderStatusPreparing:
		return to == OrderStatusReady || to == OrderStatusCancelled
	case OrderStatusReady:
		return to == OrderStatusDelivered
	}
	return false
}

// OrderLine is one item within an order.
// Name and PriceCents are snapshotted at order time so later menu edits
// do not rewrite kitchen tickets.
type OrderLine struct {
	ItemID     MenuItemID
	Name       string
	PriceCents int64
	Quantity   int
}

// Order is a customer's order for a single table
type Order struct {
	ID      OrderID
	TableID TableID
	Lines   []OrderLine
	Note    string
	Status  OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalCents returns the order total
func (o *Order) TotalCents() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.PriceCents * int64(l.Quantity)
	}
	return total
}
