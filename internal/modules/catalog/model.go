// README: Catalog entities: categories, dishes, restaurants and stop lists.
package catalog

import (
	"bistro/internal/types"
)

type Category struct {
	ID   types.ID
	Name string
}

type Dish struct {
	ID               types.ID
	CategoryID       types.ID
	Name             string
	Description      string
	ShortDescription string
	Compound         string
	// WeightGrams must be non-negative.
	WeightGrams int64
	Price       types.Money
}

type DishImage struct {
	ID     types.ID
	DishID types.ID
	// Path is the object-storage key; upload plumbing lives elsewhere.
	Path string
}

type Restaurant struct {
	ID      types.ID
	Address string
}

// StopListEntry marks a dish as unavailable at a restaurant.
type StopListEntry struct {
	ID           types.ID
	DishID       types.ID
	RestaurantID types.ID
}
