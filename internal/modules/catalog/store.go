// README: Catalog store backed by PostgreSQL with a Redis read-through cache.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"bistro/internal/types"
)

const (
	priceKeyPrefix    = "catalog:dish:%s:price"
	stopListKeyPrefix = "catalog:stoplist:%s:%s"
)

type Store struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewStore(db *pgxpool.Pool, rdb *redis.Client, cacheTTL time.Duration) *Store {
	return &Store{db: db, redis: rdb, cacheTTL: cacheTTL}
}

func (s *Store) CreateCategory(ctx context.Context, c *Category) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`,
		string(c.ID), c.Name,
	)
	return err
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateDish(ctx context.Context, d *Dish) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO dishes (id, category_id, name, description, short_description, compound, weight_grams, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(d.ID), string(d.CategoryID), d.Name, d.Description,
		d.ShortDescription, d.Compound, d.WeightGrams, d.Price.Amount,
	)
	return err
}

func (s *Store) GetDish(ctx context.Context, id types.ID) (*Dish, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, category_id, name, description, short_description, compound, weight_grams, price
		FROM dishes WHERE id = $1`, string(id),
	)
	var d Dish
	err := row.Scan(&d.ID, &d.CategoryID, &d.Name, &d.Description,
		&d.ShortDescription, &d.Compound, &d.WeightGrams, &d.Price.Amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Price.Currency = defaultCurrency
	return &d, nil
}

func (s *Store) ListDishes(ctx context.Context, categoryID types.ID) ([]Dish, error) {
	q := `
		SELECT id, category_id, name, description, short_description, compound, weight_grams, price
		FROM dishes`
	args := []any{}
	if categoryID != "" {
		q += ` WHERE category_id = $1`
		args = append(args, string(categoryID))
	}
	q += ` ORDER BY name`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.CategoryID, &d.Name, &d.Description,
			&d.ShortDescription, &d.Compound, &d.WeightGrams, &d.Price.Amount); err != nil {
			return nil, err
		}
		d.Price.Currency = defaultCurrency
		out = append(out, d)
	}
	return out, rows.Err()
}

// DishPrice returns the current catalog price, consulting the Redis
// cache first and falling back to Postgres on a miss.
func (s *Store) DishPrice(ctx context.Context, id types.ID) (types.Money, error) {
	key := fmt.Sprintf(priceKeyPrefix, id)
	if s.redis != nil {
		if v, err := s.redis.Get(ctx, key).Result(); err == nil {
			if amount, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				return types.Money{Amount: amount, Currency: defaultCurrency}, nil
			}
		}
	}
	d, err := s.GetDish(ctx, id)
	if err != nil {
		return types.Money{}, err
	}
	if s.redis != nil {
		_ = s.redis.Set(ctx, key, strconv.FormatInt(d.Price.Amount, 10), s.cacheTTL).Err()
	}
	return d.Price, nil
}

func (s *Store) CreateRestaurant(ctx context.Context, r *Restaurant) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO restaurants (id, address) VALUES ($1, $2)`,
		string(r.ID), r.Address,
	)
	return err
}

func (s *Store) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	rows, err := s.db.Query(ctx, `SELECT id, address FROM restaurants ORDER BY address`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var r Restaurant
		if err := rows.Scan(&r.ID, &r.Address); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) AddStopList(ctx context.Context, e *StopListEntry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO stop_list (id, dish_id, restaurant_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (dish_id, restaurant_id) DO NOTHING`,
		string(e.ID), string(e.DishID), string(e.RestaurantID),
	)
	if err != nil {
		return err
	}
	s.invalidateStopList(ctx, e.DishID, e.RestaurantID)
	return nil
}

func (s *Store) RemoveStopList(ctx context.Context, dishID, restaurantID types.ID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM stop_list WHERE dish_id = $1 AND restaurant_id = $2`,
		string(dishID), string(restaurantID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStopListNotFound
	}
	s.invalidateStopList(ctx, dishID, restaurantID)
	return nil
}

// IsStopListed checks whether the (dish, restaurant) pair is currently
// stop-listed. Cached per pair so kitchen polling does not hammer Postgres.
func (s *Store) IsStopListed(ctx context.Context, dishID, restaurantID types.ID) (bool, error) {
	key := fmt.Sprintf(stopListKeyPrefix, restaurantID, dishID)
	if s.redis != nil {
		if v, err := s.redis.Get(ctx, key).Result(); err == nil {
			return v == "1", nil
		}
	}
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM stop_list WHERE dish_id = $1 AND restaurant_id = $2
		)`, string(dishID), string(restaurantID),
	)
	var listed bool
	if err := row.Scan(&listed); err != nil {
		return false, err
	}
	if s.redis != nil {
		v := "0"
		if listed {
			v = "1"
		}
		_ = s.redis.Set(ctx, key, v, s.cacheTTL).Err()
	}
	return listed, nil
}

func (s *Store) invalidateStopList(ctx context.Context, dishID, restaurantID types.ID) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, fmt.Sprintf(stopListKeyPrefix, restaurantID, dishID)).Err()
}
