// README: Users store backed by PostgreSQL.
package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bistro/internal/types"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CreateClient(ctx context.Context, c *Client) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO clients (id, phone_number, first_name, last_name, bonuses)
		VALUES ($1, $2, $3, $4, $5)`,
		string(c.ID), c.PhoneNumber, c.FirstName, c.LastName, c.Bonuses,
	)
	return err
}

func (s *Store) GetClient(ctx context.Context, id types.ID) (*Client, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, phone_number, first_name, last_name, bonuses
		FROM clients WHERE id = $1`, string(id),
	)
	var c Client
	err := row.Scan(&c.ID, &c.PhoneNumber, &c.FirstName, &c.LastName, &c.Bonuses)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClientExists is the lookup the order engine uses to validate
// waiter-supplied client references.
func (s *Store) ClientExists(ctx context.Context, id types.ID) (bool, error) {
	row := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, string(id),
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e *Employee) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO employees (id, first_name, last_name, role)
		VALUES ($1, $2, $3, $4)`,
		string(e.ID), e.FirstName, e.LastName, string(e.Role),
	)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id types.ID) (*Employee, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, role
		FROM employees WHERE id = $1`, string(id),
	)
	var e Employee
	var role string
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Role = types.Role(role)
	return &e, nil
}

func (s *Store) EmployeeExists(ctx context.Context, id types.ID) (bool, error) {
	row := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, string(id),
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
