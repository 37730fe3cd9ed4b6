package repository

import (
	"context"

	"adboard/internal/domain"
)

// OrderRepository defines persistence operations for Order entities.
type OrderRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, order *domain.Order) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, page Page) ([]domain.Order, error)
	ListByListing(ctx context.Context, listingID int64, page Page) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}
