package entity

import "time"

// OrderStatus mirrors the orders.status enum.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a read-only projection of a customer order, used for tracking.
type Order struct {
	OrderNumber string
	Status      OrderStatus
	TotalAmount float64
	CreatedAt   time.Time
}
