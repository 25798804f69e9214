// README: Client and employee identity records (auth issuance lives elsewhere).
package users

import "bistro/internal/types"

type Client struct {
	ID          types.ID
	PhoneNumber string
	FirstName   string
	LastName    string
	Bonuses     int64
}

type Employee struct {
	ID        types.ID
	FirstName string
	LastName  string
	// Role is one of waiter, cook, manager.
	Role types.Role
}
