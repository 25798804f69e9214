// README: Order aggregate, order items and status-change events.
package order

import (
	"time"

	"bistro/internal/types"
)

type Order struct {
	ID     types.ID
	Status Status
	// Price is the sum of non-cancelled item prices as of the last
	// recomputation. Item prices are snapshotted at order creation,
	// so later catalog price changes never alter it.
	Price         types.Money
	Comment       string
	ClientID      *types.ID
	EmployeeID    *types.ID
	StatusVersion int
	Items         []OrderItem
	CreatedAt     time.Time
}

type OrderItem struct {
	ID      types.ID
	OrderID types.ID
	DishID  types.ID
	Status  ItemStatus
	// Price is the dish price captured when the order was placed.
	Price      types.Money
	EmployeeID *types.ID
	Comment    string
}

// Event records one status transition for the audit trail.
type Event struct {
	ID         int64
	OrderID    types.ID
	ItemID     *types.ID
	FromStatus string
	ToStatus   string
	ActorRole  types.Role
	ActorID    *types.ID
	CreatedAt  time.Time
}
