package domain

import "time"

// Platform is an advertising platform listings can be published against.
type Platform struct {
	ID   int64
	Name string
}

// ListingType categorizes listings within a platform (story, post, banner...).
type ListingType struct {
	ID         int64
	Name       string
	PlatformID int64
}

// Listing is an advertising slot offered by a user.
type Listing struct {
	ID            int64
	UserID        int64
	ListingTypeID int64
	Price         int64
	Description   string
	AssetLocation string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
