package model

import "time"

// OrderStatusUnderProcessing is the status every order is created with.
const OrderStatusUnderProcessing = "Under Processing"

// Order is a snapshot of a checkout. It is never mutated after creation.
type Order struct {
	ID         string     `json:"id"`
	Date       time.Time  `json:"date"`
	Items      []CartItem `json:"items,omitempty"`
	Status     string     `json:"status"`
	TotalPrice float64    `json:"totalPrice"`
	Provider   string     `json:"provider,omitempty"`
}

// OrderDraft holds the caller supplied part of a new order.
type OrderDraft struct {
	Items      []CartItem `json:"items,omitempty"`
	Status     string     `json:"status,omitempty"`
	TotalPrice float64    `json:"totalPrice"`
	Provider   string     `json:"provider,omitempty"`
}
