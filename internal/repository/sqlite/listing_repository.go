package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"adboard/internal/domain"
	"adboard/internal/repository"
)

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	listing_type_id INTEGER NOT NULL REFERENCES listing_types(id),
	price INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	asset_location TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const createListingTypesTable = `
CREATE TABLE IF NOT EXISTS listing_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	platform_id INTEGER NOT NULL REFERENCES platforms(id),
	UNIQUE(name, platform_id)
);
`

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createListingsTable); err != nil {
		return fmt.Errorf("create listings table: %w", err)
	}
	return nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (int64, error) {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO listings (user_id, listing_type_id, price, description, asset_location, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		listing.UserID,
		listing.ListingTypeID,
		listing.Price,
		listing.Description,
		listing.AssetLocation,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert listing: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("listing last insert id: %w", err)
	}
	listing.ID = id
	return id, nil
}

func (r *ListingRepository) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, listing_type_id, price, description, asset_location, created_at, updated_at
FROM listings
WHERE id = ?`,
		id,
	)
	return scanListing(row)
}

var listingSortColumns = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
}

func (r *ListingRepository) List(ctx context.Context, filter repository.ListingFilter, page repository.Page) ([]domain.Listing, error) {
	page = page.Clamp()

	where := "WHERE 1=1"
	args := make([]any, 0, 5)
	if filter.UserID != 0 {
		where += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.ListingTypeID != 0 {
		where += " AND listing_type_id = ?"
		args = append(args, filter.ListingTypeID)
	}
	if filter.MaxPrice != 0 {
		where += " AND price <= ?"
		args = append(args, filter.MaxPrice)
	}
	args = append(args, page.Limit, page.Offset)

	query := `
SELECT id, user_id, listing_type_id, price, description, asset_location, created_at, updated_at
FROM listings
` + where + orderClause(listingSortColumns, page) + `
LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

func (r *ListingRepository) UpdateAssetLocation(ctx context.Context, id int64, location string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE listings SET asset_location = ?, updated_at = ? WHERE id = ?`,
		location, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update listing asset: %w", err)
	}
	return requireAffected(res)
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return requireAffected(res)
}

func scanListing(row interface {
	Scan(dest ...any) error
}) (*domain.Listing, error) {
	var listing domain.Listing
	if err := row.Scan(
		&listing.ID,
		&listing.UserID,
		&listing.ListingTypeID,
		&listing.Price,
		&listing.Description,
		&listing.AssetLocation,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	return &listing, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type ListingTypeRepository struct {
	db *sql.DB
}

func NewListingTypeRepository(db *sql.DB) repository.ListingTypeRepository {
	return &ListingTypeRepository{db: db}
}

func (r *ListingTypeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createListingTypesTable); err != nil {
		return fmt.Errorf("create listing_types table: %w", err)
	}
	return nil
}

func (r *ListingTypeRepository) Create(ctx context.Context, lt *domain.ListingType) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO listing_types (name, platform_id) VALUES (?, ?)`,
		lt.Name, lt.PlatformID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("listing type %q: %w", lt.Name, repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert listing type: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("listing type last insert id: %w", err)
	}
	lt.ID = id
	return id, nil
}

func (r *ListingTypeRepository) Get(ctx context.Context, id int64) (*domain.ListingType, error) {
	var lt domain.ListingType
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, platform_id FROM listing_types WHERE id = ?`, id).
		Scan(&lt.ID, &lt.Name, &lt.PlatformID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan listing type: %w", err)
	}
	return &lt, nil
}

func (r *ListingTypeRepository) ListByPlatform(ctx context.Context, platformID int64) ([]domain.ListingType, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, platform_id FROM listing_types WHERE platform_id = ? ORDER BY id`, platformID)
	if err != nil {
		return nil, fmt.Errorf("list listing types: %w", err)
	}
	defer rows.Close()

	var types []domain.ListingType
	for rows.Next() {
		var lt domain.ListingType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.PlatformID); err != nil {
			return nil, fmt.Errorf("scan listing type: %w", err)
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}
