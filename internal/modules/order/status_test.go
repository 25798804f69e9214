// README: State machine transition-table tests (no database).
package order

import (
	"testing"

	"bistro/internal/types"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// happy-path forward transitions
		{StatusWaitingForCooking, StatusCooking, true},
		{StatusCooking, StatusWaitingForDelivery, true},
		{StatusWaitingForDelivery, StatusInProcessDelivery, true},
		{StatusInProcessDelivery, StatusDelivered, true},
		{StatusDelivered, StatusFinished, true},
		{StatusFinished, StatusPaid, true},
		{StatusDelivered, StatusPaid, true},
		// cancels from every non-terminal state
		{StatusWaitingForCooking, StatusCancelled, true},
		{StatusCooking, StatusCancelled, true},
		{StatusWaitingForDelivery, StatusCancelled, true},
		{StatusInProcessDelivery, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, true},
		// invalid: terminal states have no outgoing transitions
		{StatusFinished, StatusCancelled, false},
		{StatusCancelled, StatusWaitingForCooking, false},
		{StatusPaid, StatusFinished, false},
		// invalid: skipping states
		{StatusWaitingForCooking, StatusWaitingForDelivery, false},
		{StatusWaitingForCooking, StatusDelivered, false},
		{StatusCooking, StatusDelivered, false},
		{StatusWaitingForCooking, StatusPaid, false},
		// invalid: moving backwards
		{StatusCooking, StatusWaitingForCooking, false},
		{StatusDelivered, StatusInProcessDelivery, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRoleCanTransition(t *testing.T) {
	cases := []struct {
		role     types.Role
		from, to Status
		want     bool
	}{
		// cook handles only the kitchen segment
		{types.RoleCook, StatusWaitingForCooking, StatusCooking, true},
		{types.RoleCook, StatusCooking, StatusWaitingForDelivery, true},
		{types.RoleCook, StatusWaitingForCooking, StatusCancelled, false},
		{types.RoleCook, StatusDelivered, StatusPaid, false},
		{types.RoleCook, StatusWaitingForDelivery, StatusInProcessDelivery, false},
		// waiters and managers run the full machine
		{types.RoleWaiter, StatusDelivered, StatusPaid, true},
		{types.RoleWaiter, StatusWaitingForCooking, StatusCancelled, true},
		{types.RoleManager, StatusFinished, StatusPaid, true},
		{types.RoleManager, StatusWaitingForCooking, StatusDelivered, false},
		// clients never change order status
		{types.RoleClient, StatusWaitingForCooking, StatusCooking, false},
		{types.RoleAnonymous, StatusWaitingForCooking, StatusCooking, false},
	}
	for _, tc := range cases {
		got := RoleCanTransition(tc.role, tc.from, tc.to)
		if got != tc.want {
			t.Errorf("RoleCanTransition(%s, %s, %s) = %v, want %v", tc.role, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanTransitionItem(t *testing.T) {
	cases := []struct {
		from, to ItemStatus
		want     bool
	}{
		{ItemWaitingForCooking, ItemCooking, true},
		{ItemCooking, ItemDone, true},
		{ItemDone, ItemDelivered, true},
		{ItemWaitingForCooking, ItemCancelled, true},
		{ItemCooking, ItemCancelled, true},
		{ItemDone, ItemCancelled, true},
		// no skip-ahead, no backwards, terminal stays terminal
		{ItemWaitingForCooking, ItemDone, false},
		{ItemWaitingForCooking, ItemDelivered, false},
		{ItemCooking, ItemDelivered, false},
		{ItemDone, ItemCooking, false},
		{ItemDelivered, ItemCancelled, false},
		{ItemCancelled, ItemWaitingForCooking, false},
	}
	for _, tc := range cases {
		got := CanTransitionItem(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransitionItem(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRoleCanTransitionItem(t *testing.T) {
	cases := []struct {
		role     types.Role
		from, to ItemStatus
		want     bool
	}{
		{types.RoleCook, ItemWaitingForCooking, ItemCooking, true},
		{types.RoleCook, ItemCooking, ItemDone, true},
		{types.RoleCook, ItemDone, ItemDelivered, false},
		{types.RoleCook, ItemCooking, ItemCancelled, false},
		{types.RoleWaiter, ItemDone, ItemDelivered, true},
		{types.RoleWaiter, ItemCooking, ItemCancelled, true},
		{types.RoleWaiter, ItemWaitingForCooking, ItemCooking, false},
		{types.RoleManager, ItemDone, ItemCancelled, true},
		{types.RoleClient, ItemDone, ItemDelivered, false},
	}
	for _, tc := range cases {
		got := RoleCanTransitionItem(tc.role, tc.from, tc.to)
		if got != tc.want {
			t.Errorf("RoleCanTransitionItem(%s, %s, %s) = %v, want %v", tc.role, tc.from, tc.to, got, tc.want)
		}
	}
}
