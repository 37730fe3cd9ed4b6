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

const createPlatformsTable = `
CREATE TABLE IF NOT EXISTS platforms (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
`

const createConnectionsTable = `
CREATE TABLE IF NOT EXISTS connections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	platform_id INTEGER NOT NULL REFERENCES platforms(id),
	account_handle TEXT NOT NULL,
	access_token TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE(user_id, platform_id)
);
`

type PlatformRepository struct {
	db *sql.DB
}

func NewPlatformRepository(db *sql.DB) repository.PlatformRepository {
	return &PlatformRepository{db: db}
}

func (r *PlatformRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPlatformsTable); err != nil {
		return fmt.Errorf("create platforms table: %w", err)
	}
	return nil
}

func (r *PlatformRepository) Create(ctx context.Context, platform *domain.Platform) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO platforms (name) VALUES (?)`, platform.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("platform %q: %w", platform.Name, repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert platform: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("platform last insert id: %w", err)
	}
	platform.ID = id
	return id, nil
}

func (r *PlatformRepository) Get(ctx context.Context, id int64) (*domain.Platform, error) {
	var platform domain.Platform
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM platforms WHERE id = ?`, id).
		Scan(&platform.ID, &platform.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan platform: %w", err)
	}
	return &platform, nil
}

func (r *PlatformRepository) List(ctx context.Context) ([]domain.Platform, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM platforms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	defer rows.Close()

	var platforms []domain.Platform
	for rows.Next() {
		var platform domain.Platform
		if err := rows.Scan(&platform.ID, &platform.Name); err != nil {
			return nil, fmt.Errorf("scan platform: %w", err)
		}
		platforms = append(platforms, platform)
	}
	return platforms, rows.Err()
}

type ConnectionRepository struct {
	db *sql.DB
}

func NewConnectionRepository(db *sql.DB) repository.ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func (r *ConnectionRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createConnectionsTable); err != nil {
		return fmt.Errorf("create connections table: %w", err)
	}
	return nil
}

// Upsert replaces the token for an existing user/platform pair; reconnecting
// a platform must not leave two live connections behind.
func (r *ConnectionRepository) Upsert(ctx context.Context, conn *domain.Connection) (int64, error) {
	conn.CreatedAt = time.Now().UTC()

	// RETURNING rather than LastInsertId: on the conflict path nothing is
	// inserted, so LastInsertId would report an unrelated earlier insert.
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO connections (user_id, platform_id, account_handle, access_token, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id, platform_id)
DO UPDATE SET account_handle = excluded.account_handle, access_token = excluded.access_token
RETURNING id`,
		conn.UserID,
		conn.PlatformID,
		conn.AccountHandle,
		conn.AccessToken,
		conn.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert connection: %w", err)
	}
	conn.ID = id
	return id, nil
}

func (r *ConnectionRepository) GetByUserAndPlatform(ctx context.Context, userID, platformID int64) (*domain.Connection, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, platform_id, account_handle, access_token, created_at
FROM connections
WHERE user_id = ? AND platform_id = ?`,
		userID, platformID,
	)
	return scanConnection(row)
}

func (r *ConnectionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Connection, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, platform_id, account_handle, access_token, created_at
FROM connections
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, *conn)
	}
	return conns, rows.Err()
}

func (r *ConnectionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM connections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	return requireAffected(res)
}

func scanConnection(row interface {
	Scan(dest ...any) error
}) (*domain.Connection, error) {
	var conn domain.Connection
	if err := row.Scan(
		&conn.ID,
		&conn.UserID,
		&conn.PlatformID,
		&conn.AccountHandle,
		&conn.AccessToken,
		&conn.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan connection: %w", err)
	}
	return &conn, nil
}
