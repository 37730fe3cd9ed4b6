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

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	listing_id INTEGER NOT NULL REFERENCES listings(id),
	user_id INTEGER NOT NULL REFERENCES users(id),
	price INTEGER NOT NULL,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createOrdersTable); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (int64, error) {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO orders (listing_id, user_id, price, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		order.ListingID,
		order.UserID,
		order.Price,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order last insert id: %w", err)
	}
	order.ID = id
	return id, nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, listing_id, user_id, price, status, created_at, updated_at
FROM orders
WHERE id = ?`,
		id,
	)
	return scanOrder(row)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, error) {
	return r.list(ctx, "user_id", userID, page)
}

func (r *OrderRepository) ListByListing(ctx context.Context, listingID int64, page repository.Page) ([]domain.Order, error) {
	return r.list(ctx, "listing_id", listingID, page)
}

var orderSortColumns = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
}

func (r *OrderRepository) list(ctx context.Context, column string, id int64, page repository.Page) ([]domain.Order, error) {
	page = page.Clamp()
	query := `
SELECT id, listing_id, user_id, price, status, created_at, updated_at
FROM orders
WHERE ` + column + ` = ?` + orderClause(orderSortColumns, page) + `
LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, id, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return requireAffected(res)
}

func scanOrder(row interface {
	Scan(dest ...any) error
}) (*domain.Order, error) {
	var order domain.Order
	var status string
	if err := row.Scan(
		&order.ID,
		&order.ListingID,
		&order.UserID,
		&order.Price,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	order.Status = domain.OrderStatus(status)
	return &order, nil
}
