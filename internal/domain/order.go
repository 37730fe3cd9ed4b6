package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusDeclined  OrderStatus = "declined"
	OrderStatusCompleted OrderStatus = "completed"
)

// Order is a purchase of a listing. Price is snapshotted from the listing
// at placement time so later listing edits do not reprice open orders.
type Order struct {
	ID        int64
	ListingID int64
	UserID    int64
	Price     int64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
