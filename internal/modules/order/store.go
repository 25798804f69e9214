// README: Order store backed by PostgreSQL; item mutations and total recomputation share one transaction.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// Create inserts the order, its items and the initial status event in a
// single transaction. Either the whole order lands or none of it does.
func (s *Store) Create(ctx context.Context, o *Order, ev *Event) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, status, price, comment, client_id, employee_id, status_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(o.ID), string(o.Status), o.Price.Amount, o.Comment,
		idPtr(o.ClientID), idPtr(o.EmployeeID), o.StatusVersion, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, dish_id, status, price, employee_id, comment)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			string(it.ID), string(o.ID), string(it.DishID), string(it.Status),
			it.Price.Amount, idPtr(it.EmployeeID), it.Comment,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := insertEvent(ctx, tx, ev); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, status, price, comment, client_id, employee_id, status_version, created_at
		FROM orders WHERE id = $1`, string(id),
	)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	items, err := s.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (s *Store) GetItem(ctx context.Context, itemID types.ID) (*OrderItem, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, order_id, dish_id, status, price, employee_id, comment
		FROM order_items WHERE id = $1`, string(itemID),
	)
	return scanItem(row)
}

func (s *Store) ListAll(ctx context.Context) ([]Order, error) {
	return s.list(ctx, `
		SELECT id, status, price, comment, client_id, employee_id, status_version, created_at
		FROM orders ORDER BY created_at DESC`)
}

func (s *Store) ListByClient(ctx context.Context, clientID types.ID) ([]Order, error) {
	return s.list(ctx, `
		SELECT id, status, price, comment, client_id, employee_id, status_version, created_at
		FROM orders WHERE client_id = $1 ORDER BY created_at DESC`, string(clientID))
}

func (s *Store) list(ctx context.Context, q string, args ...any) ([]Order, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// updateFields is the role-filtered field mask applied by the service.
// Nil fields stay untouched.
type updateFields struct {
	Status     *Status
	Comment    *string
	EmployeeID *types.ID
	ClientID   *types.ID
}

// Update applies the field mask guarded by the optimistic status_version
// check. Returns false without writing anything when a concurrent update
// got there first (including a concurrent status transition from the
// same source state).
func (s *Store) Update(ctx context.Context, id types.ID, version int, f updateFields, ev *Event) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	set := []string{"status_version = status_version + 1"}
	args := []any{}
	n := 1
	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, v)
		n++
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	if f.Comment != nil {
		add("comment", *f.Comment)
	}
	if f.EmployeeID != nil {
		add("employee_id", string(*f.EmployeeID))
	}
	if f.ClientID != nil {
		add("client_id", string(*f.ClientID))
	}
	args = append(args, string(id), version)

	tag, err := tx.Exec(ctx, fmt.Sprintf(
		`UPDATE orders SET %s WHERE id = $%d AND status_version = $%d`,
		strings.Join(set, ", "), n, n+1,
	), args...)
	if err != nil {
		return false, fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}
	if ev != nil {
		if err := insertEvent(ctx, tx, ev); err != nil {
			return false, err
		}
	}
	return true, tx.Commit(ctx)
}

func (s *Store) Delete(ctx context.Context, id types.ID) (bool, error) {
	// Items cascade; table assignments keep their row with order_id nulled.
	tag, err := s.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// itemFields is the mask for a single item mutation.
type itemFields struct {
	Status     *ItemStatus
	Comment    *string
	EmployeeID *types.ID
}

// UpdateItemAndRecompute mutates one item and recomputes the parent
// order's price in the same transaction. The parent row is locked first
// so two concurrent cancellations cannot both read a stale total, and
// the item update is guarded by its expected current status so a
// transition validity check can never race a concurrent transition.
func (s *Store) UpdateItemAndRecompute(ctx context.Context, orderID, itemID types.ID, fromStatus ItemStatus, f itemFields, ev *Event) (*OrderItem, types.Money, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, types.Money{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked string
	err = tx.QueryRow(ctx,
		`SELECT id FROM orders WHERE id = $1 FOR UPDATE`, string(orderID),
	).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.Money{}, ErrNotFound
	}
	if err != nil {
		return nil, types.Money{}, fmt.Errorf("lock order: %w", err)
	}

	set := []string{}
	args := []any{}
	n := 1
	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, v)
		n++
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	if f.Comment != nil {
		add("comment", *f.Comment)
	}
	if f.EmployeeID != nil {
		add("employee_id", string(*f.EmployeeID))
	}
	args = append(args, string(itemID), string(fromStatus))

	tag, err := tx.Exec(ctx, fmt.Sprintf(
		`UPDATE order_items SET %s WHERE id = $%d AND status = $%d`,
		strings.Join(set, ", "), n, n+1,
	), args...)
	if err != nil {
		return nil, types.Money{}, fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, types.Money{}, ErrConflict
	}

	var total int64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(price), 0) FROM order_items
		WHERE order_id = $1 AND status <> $2`,
		string(orderID), string(ItemCancelled),
	).Scan(&total)
	if err != nil {
		return nil, types.Money{}, fmt.Errorf("recompute total: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE orders SET price = $1 WHERE id = $2`, total, string(orderID),
	); err != nil {
		return nil, types.Money{}, fmt.Errorf("update total: %w", err)
	}

	row := tx.QueryRow(ctx, `
		SELECT id, order_id, dish_id, status, price, employee_id, comment
		FROM order_items WHERE id = $1`, string(itemID),
	)
	item, err := scanItemRow(row)
	if err != nil {
		return nil, types.Money{}, err
	}

	if ev != nil {
		if err := insertEvent(ctx, tx, ev); err != nil {
			return nil, types.Money{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, types.Money{}, err
	}
	return item, types.Money{Amount: total, Currency: item.Price.Currency}, nil
}

func (s *Store) itemsFor(ctx context.Context, orderID types.ID) ([]OrderItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, dish_id, status, price, employee_id, comment
		FROM order_items WHERE order_id = $1 ORDER BY id`, string(orderID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderItem
	for rows.Next() {
		it, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func insertEvent(ctx context.Context, tx pgx.Tx, ev *Event) error {
	if ev == nil {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO order_status_events (order_id, item_id, from_status, to_status, actor_role, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(ev.OrderID), idPtr(ev.ItemID), ev.FromStatus, ev.ToStatus,
		string(ev.ActorRole), idPtr(ev.ActorID), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanOrder(row scannable) (*Order, error) {
	var o Order
	var clientID, employeeID *string
	var status string
	err := row.Scan(&o.ID, &status, &o.Price.Amount, &o.Comment,
		&clientID, &employeeID, &o.StatusVersion, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	o.Price.Currency = priceCurrency
	o.ClientID = toID(clientID)
	o.EmployeeID = toID(employeeID)
	return &o, nil
}

func scanItem(row pgx.Row) (*OrderItem, error) {
	it, err := scanItemRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func scanItemRow(row scannable) (*OrderItem, error) {
	var it OrderItem
	var employeeID *string
	var status string
	err := row.Scan(&it.ID, &it.OrderID, &it.DishID, &status,
		&it.Price.Amount, &employeeID, &it.Comment)
	if err != nil {
		return nil, err
	}
	it.Status = ItemStatus(status)
	it.Price.Currency = priceCurrency
	it.EmployeeID = toID(employeeID)
	return &it, nil
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toID(v *string) *types.ID {
	if v == nil {
		return nil
	}
	id := types.ID(*v)
	return &id
}
