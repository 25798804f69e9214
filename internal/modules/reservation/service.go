// README: Table assignment service with arrival-time validation.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bistro/internal/types"
)

var (
	ErrNotFound        = errors.New("table assignment not found")
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError mirrors the engine's field-level error shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	ArrivalTime  time.Time
	OrderID      *types.ID
	RestaurantID types.ID
	PlaceNumber  int
}

// ValidateArrivalTime rejects arrival times that are not strictly in
// the future at the moment of validation.
func ValidateArrivalTime(arrival, now time.Time) error {
	if !arrival.After(now) {
		return &ValidationError{Field: "arrival_time", Reason: "arrival time must be in the future"}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, actor types.Actor, cmd CreateCommand) (*TableAssignment, error) {
	if actor.Role == types.RoleAnonymous || actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	if err := ValidateArrivalTime(cmd.ArrivalTime, time.Now()); err != nil {
		return nil, err
	}
	if cmd.RestaurantID == "" {
		return nil, &ValidationError{Field: "restaurant", Reason: "restaurant is required"}
	}
	if cmd.PlaceNumber <= 0 {
		return nil, &ValidationError{Field: "place_number", Reason: "place number must be positive"}
	}

	a := &TableAssignment{
		ID:           types.ID(uuid.NewString()),
		ArrivalTime:  cmd.ArrivalTime,
		OrderID:      cmd.OrderID,
		RestaurantID: cmd.RestaurantID,
		PlaceNumber:  cmd.PlaceNumber,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*TableAssignment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]TableAssignment, error) {
	return s.store.List(ctx)
}
