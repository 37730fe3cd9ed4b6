package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"adboard/internal/domain"
	"adboard/internal/repository"
)

// Repositories bundles every sqlite-backed repository over one database.
type Repositories struct {
	Users        repository.UserRepository
	Platforms    repository.PlatformRepository
	ListingTypes repository.ListingTypeRepository
	Listings     repository.ListingRepository
	Orders       repository.OrderRepository
	Connections  repository.ConnectionRepository
}

// NewRepositories constructs all repositories. Init must still be called.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Platforms:    NewPlatformRepository(db),
		ListingTypes: NewListingTypeRepository(db),
		Listings:     NewListingRepository(db),
		Orders:       NewOrderRepository(db),
		Connections:  NewConnectionRepository(db),
	}
}

// Init creates every table. Order matters: listings reference listing_types
// and platforms through foreign keys.
func (r *Repositories) Init(ctx context.Context) error {
	inits := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", r.Users.Init},
		{"platforms", r.Platforms.Init},
		{"listing types", r.ListingTypes.Init},
		{"listings", r.Listings.Init},
		{"orders", r.Orders.Init},
		{"connections", r.Connections.Init},
	}
	for _, init := range inits {
		if err := init.fn(ctx); err != nil {
			return fmt.Errorf("init %s repository: %w", init.name, err)
		}
	}
	return nil
}

// Seed inserts the baseline platform catalog. Safe to call on a database
// that already carries the rows.
func (r *Repositories) Seed(ctx context.Context) error {
	platforms := []struct {
		name  string
		types []string
	}{
		{"Instagram", []string{"Story", "Post", "Reel"}},
		{"YouTube", []string{"Pre-roll", "Sponsored segment"}},
	}

	for _, p := range platforms {
		platform := &domain.Platform{Name: p.name}
		if _, err := r.Platforms.Create(ctx, platform); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return fmt.Errorf("seed platform %s: %w", p.name, err)
		}
		for _, typeName := range p.types {
			lt := &domain.ListingType{Name: typeName, PlatformID: platform.ID}
			if _, err := r.ListingTypes.Create(ctx, lt); err != nil && !errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("seed listing type %s: %w", typeName, err)
			}
		}
	}
	return nil
}
