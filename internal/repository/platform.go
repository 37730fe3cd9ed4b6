package repository

import (
	"context"

	"adboard/internal/domain"
)

// PlatformRepository defines persistence operations for Platform entities.
type PlatformRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, platform *domain.Platform) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Platform, error)
	List(ctx context.Context) ([]domain.Platform, error)
}

// ConnectionRepository defines persistence operations for Connection entities.
type ConnectionRepository interface {
	Init(ctx context.Context) error
	Upsert(ctx context.Context, conn *domain.Connection) (int64, error)
	GetByUserAndPlatform(ctx context.Context, userID, platformID int64) (*domain.Connection, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Connection, error)
	Delete(ctx context.Context, id int64) error
}
