// README: Order workflow engine: role-gated transitions, field masks and price recomputation.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bistro/internal/modules/catalog"
	"bistro/internal/types"
)

const priceCurrency = "RUB"

var ErrDishStopListed = errors.New("dish is stop-listed at this restaurant")

// Catalog is the read-only dish lookup the engine depends on.
type Catalog interface {
	DishPrice(ctx context.Context, dishID types.ID) (types.Money, error)
	IsStopListed(ctx context.Context, dishID, restaurantID types.ID) (bool, error)
}

// Directory resolves client/employee references supplied in payloads.
type Directory interface {
	ClientExists(ctx context.Context, id types.ID) (bool, error)
	EmployeeExists(ctx context.Context, id types.ID) (bool, error)
}

// Locator resolves which restaurant an order is bound to, via its table
// assignment. Empty id means the order has no restaurant context yet.
type Locator interface {
	RestaurantForOrder(ctx context.Context, orderID types.ID) (types.ID, error)
}

// Notifier receives status-change events after they are committed.
type Notifier interface {
	StatusChanged(ctx context.Context, ev Event)
}

type Service struct {
	store     *Store
	catalog   Catalog
	directory Directory
	locator   Locator
	notify    Notifier
}

func NewService(store *Store, cat Catalog, dir Directory, loc Locator, notify Notifier) *Service {
	return &Service{store: store, catalog: cat, directory: dir, locator: loc, notify: notify}
}

type Line struct {
	DishID  types.ID
	Comment string
}

type CreateCommand struct {
	Comment string
	// ClientID is honoured only for waiters; a client actor always
	// gets their own identity regardless of what the payload says.
	ClientID *types.ID
	Lines    []Line
}

func (s *Service) Create(ctx context.Context, actor types.Actor, cmd CreateCommand) (*Order, error) {
	if d := checkPermission(actor, OpCreate, nil); !d.Allowed {
		return nil, permissionErr(actor, d)
	}
	if len(cmd.Lines) == 0 {
		return nil, &ValidationError{Field: "dishes", Reason: "order must contain at least one dish"}
	}

	var clientID, employeeID *types.ID
	switch actor.Role {
	case types.RoleClient:
		id := actor.ID
		clientID = &id
	case types.RoleWaiter:
		id := actor.ID
		employeeID = &id
		if cmd.ClientID != nil {
			ok, err := s.directory.ClientExists(ctx, *cmd.ClientID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &ValidationError{Field: "client", Reason: "client not found"}
			}
			clientID = cmd.ClientID
		}
	}

	now := time.Now()
	o := &Order{
		ID:         types.ID(uuid.NewString()),
		Status:     StatusWaitingForCooking,
		Price:      types.Money{Currency: priceCurrency},
		Comment:    cmd.Comment,
		ClientID:   clientID,
		EmployeeID: employeeID,
		CreatedAt:  now,
	}
	for _, line := range cmd.Lines {
		price, err := s.catalog.DishPrice(ctx, line.DishID)
		if err != nil {
			if errors.Is(err, catalog.ErrDishNotFound) {
				return nil, &ValidationError{Field: "dishes", Reason: "dish not found"}
			}
			return nil, err
		}
		o.Items = append(o.Items, OrderItem{
			ID:      types.ID(uuid.NewString()),
			OrderID: o.ID,
			DishID:  line.DishID,
			Status:  ItemWaitingForCooking,
			Price:   price,
			Comment: line.Comment,
		})
		o.Price = o.Price.Add(price)
	}

	ev := &Event{
		OrderID:   o.ID,
		ToStatus:  string(StatusWaitingForCooking),
		ActorRole: actor.Role,
		ActorID:   actorIDPtr(actor),
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, o, ev); err != nil {
		return nil, err
	}
	s.emit(ctx, ev)
	return o, nil
}

func (s *Service) Get(ctx context.Context, actor types.Actor, id types.ID) (*Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := checkPermission(actor, OpRead, o); !d.Allowed {
		return nil, permissionErr(actor, d)
	}
	return o, nil
}

// List returns all orders for staff and only the caller's own orders
// for clients.
func (s *Service) List(ctx context.Context, actor types.Actor) ([]Order, error) {
	if actor.Role == types.RoleAnonymous || actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	if actor.Role.Staff() {
		return s.store.ListAll(ctx)
	}
	if actor.Role == types.RoleClient {
		return s.store.ListByClient(ctx, actor.ID)
	}
	return nil, ErrPermissionDenied
}

type UpdateCommand struct {
	OrderID    types.ID
	Status     *Status
	Comment    *string
	EmployeeID *types.ID
	ClientID   *types.ID
}

// Update applies a role-filtered field mask. A single disallowed field
// rejects the whole request; nothing is partially applied.
func (s *Service) Update(ctx context.Context, actor types.Actor, cmd UpdateCommand) (*Order, error) {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if d := checkPermission(actor, OpUpdate, o); !d.Allowed {
		return nil, permissionErr(actor, d)
	}

	switch actor.Role {
	case types.RoleCook:
		if cmd.Comment != nil || cmd.EmployeeID != nil || cmd.ClientID != nil {
			return nil, ErrPermissionDenied
		}
	case types.RoleClient:
		if cmd.Status != nil || cmd.EmployeeID != nil || cmd.ClientID != nil {
			return nil, ErrPermissionDenied
		}
	}

	if cmd.Status != nil {
		if !RoleCanTransition(actor.Role, o.Status, *cmd.Status) {
			return nil, ErrInvalidTransition
		}
	}
	if cmd.EmployeeID != nil {
		ok, err := s.directory.EmployeeExists(ctx, *cmd.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &ValidationError{Field: "employee", Reason: "employee not found"}
		}
	}
	if cmd.ClientID != nil {
		ok, err := s.directory.ClientExists(ctx, *cmd.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &ValidationError{Field: "client", Reason: "client not found"}
		}
	}

	var ev *Event
	if cmd.Status != nil {
		ev = &Event{
			OrderID:    o.ID,
			FromStatus: string(o.Status),
			ToStatus:   string(*cmd.Status),
			ActorRole:  actor.Role,
			ActorID:    actorIDPtr(actor),
			CreatedAt:  time.Now(),
		}
	}
	ok, err := s.store.Update(ctx, o.ID, o.StatusVersion, updateFields{
		Status:     cmd.Status,
		Comment:    cmd.Comment,
		EmployeeID: cmd.EmployeeID,
		ClientID:   cmd.ClientID,
	}, ev)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	s.emit(ctx, ev)
	return s.store.Get(ctx, o.ID)
}

func (s *Service) Delete(ctx context.Context, actor types.Actor, id types.ID) error {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if d := checkPermission(actor, OpDelete, o); !d.Allowed {
		return permissionErr(actor, d)
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

type ItemUpdateCommand struct {
	ItemID  types.ID
	Status  *ItemStatus
	Comment *string
}

// ItemUpdateResult carries the mutated item together with the parent
// order's recomputed total; the two are committed in one transaction so
// callers never have to "remember" to recompute.
type ItemUpdateResult struct {
	Item       *OrderItem
	OrderTotal types.Money
}

func (s *Service) UpdateItem(ctx context.Context, actor types.Actor, cmd ItemUpdateCommand) (*ItemUpdateResult, error) {
	item, err := s.store.GetItem(ctx, cmd.ItemID)
	if err != nil {
		return nil, err
	}
	o, err := s.store.Get(ctx, item.OrderID)
	if err != nil {
		return nil, err
	}
	if d := checkPermission(actor, OpUpdateItem, o); !d.Allowed {
		return nil, permissionErr(actor, d)
	}
	if actor.Role == types.RoleCook && cmd.Comment != nil {
		return nil, ErrPermissionDenied
	}
	if cmd.Status == nil && cmd.Comment == nil {
		return nil, ErrBadRequest
	}

	fields := itemFields{Comment: cmd.Comment}
	var ev *Event
	if cmd.Status != nil {
		if !RoleCanTransitionItem(actor.Role, item.Status, *cmd.Status) {
			return nil, ErrInvalidTransition
		}
		// A stop-listed dish must not leave the waiting state.
		if item.Status == ItemWaitingForCooking && *cmd.Status != ItemCancelled {
			if err := s.checkStopList(ctx, item.DishID, o.ID); err != nil {
				return nil, err
			}
		}
		// The cook picking a dish up becomes its executor.
		if actor.Role == types.RoleCook && item.EmployeeID == nil {
			id := actor.ID
			fields.EmployeeID = &id
		}
		fields.Status = cmd.Status
		itemID := item.ID
		ev = &Event{
			OrderID:    o.ID,
			ItemID:     &itemID,
			FromStatus: string(item.Status),
			ToStatus:   string(*cmd.Status),
			ActorRole:  actor.Role,
			ActorID:    actorIDPtr(actor),
			CreatedAt:  time.Now(),
		}
	}

	updated, total, err := s.store.UpdateItemAndRecompute(ctx, o.ID, item.ID, item.Status, fields, ev)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, ev)
	return &ItemUpdateResult{Item: updated, OrderTotal: total}, nil
}

func (s *Service) checkStopList(ctx context.Context, dishID, orderID types.ID) error {
	if s.locator == nil || s.catalog == nil {
		return nil
	}
	restaurantID, err := s.locator.RestaurantForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if restaurantID == "" {
		// No table assignment yet, so no restaurant to check against.
		return nil
	}
	listed, err := s.catalog.IsStopListed(ctx, dishID, restaurantID)
	if err != nil {
		return err
	}
	if listed {
		return ErrDishStopListed
	}
	return nil
}

func (s *Service) emit(ctx context.Context, ev *Event) {
	if s.notify == nil || ev == nil {
		return
	}
	s.notify.StatusChanged(ctx, *ev)
}

func permissionErr(actor types.Actor, d Decision) error {
	if actor.Role == types.RoleAnonymous || actor.ID == "" {
		return ErrUnauthenticated
	}
	return fmt.Errorf("%w: %s", ErrPermissionDenied, d.Reason)
}

func actorIDPtr(actor types.Actor) *types.ID {
	if actor.ID == "" {
		return nil
	}
	id := actor.ID
	return &id
}
