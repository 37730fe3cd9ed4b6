package service

import (
	"context"
	"errors"
	"fmt"

	"adboard/internal/domain"
	"adboard/internal/repository"
)

var (
	// ErrOwnListing is returned when a user tries to order their own listing.
	ErrOwnListing = errors.New("cannot order own listing")
	// ErrInvalidTransition is returned for order status changes the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

var validTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:  {domain.OrderStatusAccepted, domain.OrderStatusDeclined},
	domain.OrderStatusAccepted: {domain.OrderStatusCompleted},
}

// OrderService coordinates order placement and status transitions.
type OrderService interface {
	PlaceOrder(ctx context.Context, listingID, userID int64) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	listings repository.ListingRepository
}

func NewOrderService(orders repository.OrderRepository, listings repository.ListingRepository) OrderService {
	return &orderService{orders: orders, listings: listings}
}

// PlaceOrder snapshots the listing price onto the order so later listing
// edits do not reprice it.
func (s *orderService) PlaceOrder(ctx context.Context, listingID, userID int64) (*domain.Order, error) {
	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("listing %d: %w", listingID, err)
	}
	if listing.UserID == userID {
		return nil, ErrOwnListing
	}

	order := &domain.Order{
		ListingID: listing.ID,
		UserID:    userID,
		Price:     listing.Price,
		Status:    domain.OrderStatusPending,
	}
	if _, err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *orderService) ListByUser(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, page)
}

func (s *orderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, status) {
		return nil, fmt.Errorf("order %d: %s to %s: %w", id, order.Status, status, ErrInvalidTransition)
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

func transitionAllowed(from, to domain.OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
