package models

import "time"

// Event types
const (
	EventTypeCartUpdated = "CART_UPDATED"
	EventTypeCartCleared = "CART_CLEARED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CartUpdatedEvent is published after every add/remove/set-quantity
// mutation. It carries the operation plus a summary of the resulting state;
// consumers treat it as advisory analytics, not as cart authority.
type CartUpdatedEvent struct {
	BaseEvent
	CartKey   string  `json:"cart_key"`
	Operation string  `json:"operation"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
}

// CartClearedEvent is published when the cart is emptied.
type CartClearedEvent struct {
	BaseEvent
	CartKey string `json:"cart_key"`
}
