// README: Catalog service: dish/category reads, price lookups, stop-list management.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"bistro/internal/types"
)

const defaultCurrency = "RUB"

var (
	ErrDishNotFound       = errors.New("dish not found")
	ErrStopListNotFound   = errors.New("stop list entry not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrBadRequest         = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateDishCommand struct {
	CategoryID       types.ID
	Name             string
	Description      string
	ShortDescription string
	Compound         string
	WeightGrams      int64
	PriceAmount      int64
}

func (s *Service) CreateDish(ctx context.Context, cmd CreateDishCommand) (*Dish, error) {
	if strings.TrimSpace(cmd.Name) == "" || cmd.CategoryID == "" {
		return nil, ErrBadRequest
	}
	if cmd.PriceAmount < 0 || cmd.WeightGrams < 0 {
		return nil, ErrBadRequest
	}
	d := &Dish{
		ID:               types.ID(uuid.NewString()),
		CategoryID:       cmd.CategoryID,
		Name:             cmd.Name,
		Description:      cmd.Description,
		ShortDescription: cmd.ShortDescription,
		Compound:         cmd.Compound,
		WeightGrams:      cmd.WeightGrams,
		Price:            types.Money{Amount: cmd.PriceAmount, Currency: defaultCurrency},
	}
	if err := s.store.CreateDish(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBadRequest
	}
	c := &Category{ID: types.ID(uuid.NewString()), Name: name}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) ListDishes(ctx context.Context, categoryID types.ID) ([]Dish, error) {
	return s.store.ListDishes(ctx, categoryID)
}

func (s *Service) GetDish(ctx context.Context, id types.ID) (*Dish, error) {
	return s.store.GetDish(ctx, id)
}

func (s *Service) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	return s.store.ListRestaurants(ctx)
}

func (s *Service) CreateRestaurant(ctx context.Context, address string) (*Restaurant, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrBadRequest
	}
	r := &Restaurant{ID: types.ID(uuid.NewString()), Address: address}
	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DishPrice returns the current catalog price for a dish.
func (s *Service) DishPrice(ctx context.Context, id types.ID) (types.Money, error) {
	return s.store.DishPrice(ctx, id)
}

// IsStopListed reports whether a dish is stop-listed at a restaurant.
func (s *Service) IsStopListed(ctx context.Context, dishID, restaurantID types.ID) (bool, error) {
	return s.store.IsStopListed(ctx, dishID, restaurantID)
}

func (s *Service) AddStopList(ctx context.Context, dishID, restaurantID types.ID) (*StopListEntry, error) {
	if dishID == "" || restaurantID == "" {
		return nil, ErrBadRequest
	}
	if _, err := s.store.GetDish(ctx, dishID); err != nil {
		return nil, err
	}
	e := &StopListEntry{
		ID:           types.ID(uuid.NewString()),
		DishID:       dishID,
		RestaurantID: restaurantID,
	}
	if err := s.store.AddStopList(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) RemoveStopList(ctx context.Context, dishID, restaurantID types.ID) error {
	return s.store.RemoveStopList(ctx, dishID, restaurantID)
}
