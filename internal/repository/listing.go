package repository

import (
	"context"

	"adboard/internal/domain"
)

// ListingFilter narrows listing queries. Zero values mean "no constraint".
type ListingFilter struct {
	UserID        int64
	ListingTypeID int64
	MaxPrice      int64
}

// ListingRepository defines persistence operations for Listing entities.
type ListingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, listing *domain.Listing) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter, page Page) ([]domain.Listing, error)
	UpdateAssetLocation(ctx context.Context, id int64, location string) error
	Delete(ctx context.Context, id int64) error
}

// ListingTypeRepository defines persistence operations for ListingType entities.
type ListingTypeRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, lt *domain.ListingType) (int64, error)
	Get(ctx context.Context, id int64) (*domain.ListingType, error)
	ListByPlatform(ctx context.Context, platformID int64) ([]domain.ListingType, error)
}
