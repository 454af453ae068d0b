package domain

import "time"

// Change event types, matching the insert/update/delete vocabulary of the
// change feed.
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// Tables that emit change events.
const (
	TableOrders   = "orders"
	TableProfiles = "profiles"
	TableRatings  = "ratings"
)

// ChangeEvent is published to the broker for every committed mutation of a
// watched table. Subscribers filter by UserID; order-status consumers
// additionally look at OrderID and Status.
type ChangeEvent struct {
	Table        string      `json:"table"`
	Type         string      `json:"type"`
	UserID       int         `json:"user_id"`
	OrderID      int         `json:"order_id,omitempty"`
	RestaurantID int         `json:"restaurant_id,omitempty"`
	Status       OrderStatus `json:"status,omitempty"`
	Coins        int         `json:"coins,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}
