// README: Table assignments binding an order to a restaurant seat for an arrival window.
package reservation

import (
	"time"

	"bistro/internal/types"
)

type TableAssignment struct {
	ID types.ID
	// ArrivalTime must be strictly in the future at creation time.
	ArrivalTime time.Time
	// OrderID is nulled (not cascaded) when the order is deleted, so
	// the reservation record survives.
	OrderID      *types.ID
	RestaurantID types.ID
	PlaceNumber  int
	CreatedAt    time.Time
}
