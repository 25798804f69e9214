// README: Table assignment store backed by PostgreSQL.
package reservation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bistro/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, a *TableAssignment) error {
	var orderID *string
	if a.OrderID != nil {
		v := string(*a.OrderID)
		orderID = &v
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO table_assignments (id, arrival_time, order_id, restaurant_id, place_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(a.ID), a.ArrivalTime, orderID, string(a.RestaurantID), a.PlaceNumber, a.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*TableAssignment, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, arrival_time, order_id, restaurant_id, place_number, created_at
		FROM table_assignments WHERE id = $1`, string(id),
	)
	return scanAssignment(row)
}

func (s *Store) List(ctx context.Context) ([]TableAssignment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, arrival_time, order_id, restaurant_id, place_number, created_at
		FROM table_assignments ORDER BY arrival_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TableAssignment
	for rows.Next() {
		var a TableAssignment
		var orderID *string
		if err := rows.Scan(&a.ID, &a.ArrivalTime, &orderID, &a.RestaurantID, &a.PlaceNumber, &a.CreatedAt); err != nil {
			return nil, err
		}
		if orderID != nil {
			id := types.ID(*orderID)
			a.OrderID = &id
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RestaurantForOrder resolves the restaurant an order is bound to via
// its table assignment; empty when the order has no reservation.
func (s *Store) RestaurantForOrder(ctx context.Context, orderID types.ID) (types.ID, error) {
	row := s.db.QueryRow(ctx, `
		SELECT restaurant_id FROM table_assignments
		WHERE order_id = $1
		ORDER BY arrival_time DESC LIMIT 1`, string(orderID),
	)
	var restaurantID string
	err := row.Scan(&restaurantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return types.ID(restaurantID), nil
}

func scanAssignment(row pgx.Row) (*TableAssignment, error) {
	var a TableAssignment
	var orderID *string
	err := row.Scan(&a.ID, &a.ArrivalTime, &orderID, &a.RestaurantID, &a.PlaceNumber, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if orderID != nil {
		id := types.ID(*orderID)
		a.OrderID = &id
	}
	return &a, nil
}
