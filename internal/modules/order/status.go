// README: Order and order-item state machines with role-gated transition tables.
package order

import "bistro/internal/types"

type Status string

const (
	StatusWaitingForCooking  Status = "WAITING_FOR_COOKING"
	StatusCooking            Status = "COOKING"
	StatusWaitingForDelivery Status = "WAITING_FOR_DELIVERY"
	StatusInProcessDelivery  Status = "IN_PROCESS_DELIVERY"
	StatusDelivered          Status = "DELIVERED"
	StatusFinished           Status = "FINISHED"
	StatusCancelled          Status = "CANCEL"
	StatusPaid               Status = "PAID"
)

type ItemStatus string

const (
	ItemWaitingForCooking ItemStatus = "WAITING_FOR_COOKING"
	ItemCooking           ItemStatus = "COOKING"
	ItemDone              ItemStatus = "DONE"
	ItemDelivered         ItemStatus = "DELIVERED"
	ItemCancelled         ItemStatus = "CANCEL"
)

// allowedTransitions is the full order state flow. Cancel is reachable
// from every non-terminal state; PAID from DELIVERED and FINISHED.
var allowedTransitions = map[Status][]Status{
	StatusWaitingForCooking:  {StatusCooking, StatusCancelled},
	StatusCooking:            {StatusWaitingForDelivery, StatusCancelled},
	StatusWaitingForDelivery: {StatusInProcessDelivery, StatusCancelled},
	StatusInProcessDelivery:  {StatusDelivered, StatusCancelled},
	StatusDelivered:          {StatusFinished, StatusPaid, StatusCancelled},
	StatusFinished:           {StatusPaid},
}

// cookTransitions is the kitchen-relevant subset: a cook never marks
// orders paid, cancelled or moving through delivery.
var cookTransitions = map[Status][]Status{
	StatusWaitingForCooking: {StatusCooking},
	StatusCooking:           {StatusWaitingForDelivery},
}

// itemTransitions is the linear kitchen pipeline for a single dish,
// with an explicit cancel path from every non-terminal state.
var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemWaitingForCooking: {ItemCooking, ItemCancelled},
	ItemCooking:           {ItemDone, ItemCancelled},
	ItemDone:              {ItemDelivered, ItemCancelled},
}

// cookItemTransitions lets a cook advance one pipeline step at a time;
// delivery and cancellation belong to the waiter.
var cookItemTransitions = map[ItemStatus][]ItemStatus{
	ItemWaitingForCooking: {ItemCooking},
	ItemCooking:           {ItemDone},
}

// waiterItemTransitions covers marking done dishes delivered and
// cancelling anything not yet delivered.
var waiterItemTransitions = map[ItemStatus][]ItemStatus{
	ItemWaitingForCooking: {ItemCancelled},
	ItemCooking:           {ItemCancelled},
	ItemDone:              {ItemDelivered, ItemCancelled},
}

func contains[S ~string](set []S, v S) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether the order status change is one hop in
// the full state machine, regardless of role.
func CanTransition(from, to Status) bool {
	return contains(allowedTransitions[from], to)
}

// RoleCanTransition additionally applies the caller's transition subset.
func RoleCanTransition(role types.Role, from, to Status) bool {
	switch role {
	case types.RoleWaiter, types.RoleManager:
		return CanTransition(from, to)
	case types.RoleCook:
		return contains(cookTransitions[from], to)
	}
	return false
}

// CanTransitionItem reports whether the item status change is valid in
// the full item machine.
func CanTransitionItem(from, to ItemStatus) bool {
	return contains(itemTransitions[from], to)
}

// RoleCanTransitionItem applies the per-role item transition subset.
func RoleCanTransitionItem(role types.Role, from, to ItemStatus) bool {
	switch role {
	case types.RoleCook:
		return contains(cookItemTransitions[from], to)
	case types.RoleWaiter, types.RoleManager:
		return contains(waiterItemTransitions[from], to)
	}
	return false
}

// Terminal reports whether an order status has no outgoing transitions.
func (s Status) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s ItemStatus) Terminal() bool {
	return len(itemTransitions[s]) == 0
}
