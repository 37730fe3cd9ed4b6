package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"adboard/internal/domain"
	"adboard/internal/repository"
	"adboard/internal/storage"
)

// ErrStorageUnconfigured is returned from asset operations when no bucket is set.
var ErrStorageUnconfigured = errors.New("asset storage is not configured")

const assetUploadExpiry = 15 * time.Minute

// ListingService coordinates listing level operations backed by repositories
// and optional asset storage.
type ListingService interface {
	CreateListing(ctx context.Context, userID, listingTypeID, price int64, description string) (*domain.Listing, error)
	GetListing(ctx context.Context, id int64) (*domain.Listing, error)
	ListListings(ctx context.Context, filter repository.ListingFilter, page repository.Page) ([]domain.Listing, error)
	CreateAssetUploadURL(ctx context.Context, listingID int64, filename string) (string, error)
	DeleteListing(ctx context.Context, id int64) error
}

type listingService struct {
	listings  repository.ListingRepository
	types     repository.ListingTypeRepository
	assets    storage.Service
	bucket    string
	keyPrefix string
}

func NewListingService(listings repository.ListingRepository, types repository.ListingTypeRepository, assets storage.Service, bucket, keyPrefix string) ListingService {
	return &listingService{
		listings:  listings,
		types:     types,
		assets:    assets,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (s *listingService) CreateListing(ctx context.Context, userID, listingTypeID, price int64, description string) (*domain.Listing, error) {
	if _, err := s.types.Get(ctx, listingTypeID); err != nil {
		return nil, fmt.Errorf("listing type %d: %w", listingTypeID, err)
	}

	listing := &domain.Listing{
		UserID:        userID,
		ListingTypeID: listingTypeID,
		Price:         price,
		Description:   strings.TrimSpace(description),
	}
	if _, err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.listings.Get(ctx, id)
}

func (s *listingService) ListListings(ctx context.Context, filter repository.ListingFilter, page repository.Page) ([]domain.Listing, error) {
	return s.listings.List(ctx, filter, page)
}

// CreateAssetUploadURL presigns a PUT for the listing's creative and records
// the object location on the listing.
func (s *listingService) CreateAssetUploadURL(ctx context.Context, listingID int64, filename string) (string, error) {
	if s.assets == nil || s.bucket == "" {
		return "", ErrStorageUnconfigured
	}

	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/listing-%d/%s-%s", s.keyPrefix, listing.ID, uuid.NewString(), sanitizeFilename(filename))
	url, err := s.assets.PresignUpload(ctx, s.bucket, key, assetUploadExpiry)
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	if err := s.listings.UpdateAssetLocation(ctx, listing.ID, location); err != nil {
		return "", err
	}
	return url, nil
}

// DeleteListing removes the listing row and, when storage is configured, its
// uploaded creatives.
func (s *listingService) DeleteListing(ctx context.Context, id int64) error {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return err
	}

	if s.assets != nil && s.bucket != "" && listing.AssetLocation != "" {
		prefix := fmt.Sprintf("%s/listing-%d", s.keyPrefix, listing.ID)
		if err := s.assets.DeletePrefix(ctx, s.bucket, prefix); err != nil {
			return fmt.Errorf("delete listing assets: %w", err)
		}
	}

	return s.listings.Delete(ctx, id)
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "-")
	if name == "" {
		name = "asset"
	}
	return name
}
