// README: Role/ownership authorization decisions, kept separate from the state machines.
package order

import "bistro/internal/types"

type Operation string

const (
	OpCreate     Operation = "create_order"
	OpRead       Operation = "read_order"
	OpUpdate     Operation = "update_order"
	OpDelete     Operation = "delete_order"
	OpUpdateItem Operation = "update_order_item"
)

// Decision is a tagged authorization result; Reason is set when denied.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ownedBy reports whether the order belongs to the given client.
func ownedBy(o *Order, clientID types.ID) bool {
	return o != nil && o.ClientID != nil && *o.ClientID == clientID
}

// checkPermission decides whether the actor may perform op on the
// target order. Target may be nil for OpCreate. Field-level masks are
// enforced separately in the service; this layer answers only
// "may this role touch this order at all".
func checkPermission(actor types.Actor, op Operation, target *Order) Decision {
	if actor.Role == types.RoleAnonymous || actor.ID == "" {
		return deny("authentication required")
	}

	switch op {
	case OpCreate:
		switch actor.Role {
		case types.RoleClient, types.RoleWaiter:
			return allow()
		}
		return deny("only clients and waiters may create orders")

	case OpRead:
		if actor.Role.Staff() {
			return allow()
		}
		if actor.Role == types.RoleClient {
			if ownedBy(target, actor.ID) {
				return allow()
			}
			return deny("clients may read only their own orders")
		}

	case OpUpdate:
		if actor.Role.Staff() {
			return allow()
		}
		if actor.Role == types.RoleClient {
			if ownedBy(target, actor.ID) {
				return allow()
			}
			return deny("clients may update only their own orders")
		}

	case OpDelete:
		switch actor.Role {
		case types.RoleWaiter, types.RoleManager:
			return allow()
		}
		return deny("only waiters and managers may delete orders")

	case OpUpdateItem:
		if actor.Role.Staff() {
			return allow()
		}
		return deny("order items are managed by staff")
	}
	return deny("unknown operation")
}
