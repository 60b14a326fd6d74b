package models

import (
	"errors"
	"fmt"
)

// OrderStatus represents a stage in the order lifecycle
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ErrUnknownStatus is returned when a status string is not part of the lifecycle
var ErrUnknownStatus = errors.New("invalid status")

// ErrInvalidTransition is returned when a status is legal but not reachable
// from the order's current status
var ErrInvalidTransition = errors.New("invalid transition")

// forwardTransitions is the authoritative state machine definition: each
// non-terminal status maps to its single legal forward successor. The
// universal cancel edge and the picked_up -> completed close-out edge are
// handled separately in ValidateTransition.
var forwardTransitions = map[OrderStatus]OrderStatus{
	StatusPending:   StatusAccepted,
	StatusAccepted:  StatusPreparing,
	StatusPreparing: StatusPickedUp,
	StatusPickedUp:  StatusDelivered,
}

// allStatuses is the closed set of valid status strings
var allStatuses = map[OrderStatus]bool{
	StatusPending:   true,
	StatusAccepted:  true,
	StatusPreparing: true,
	StatusPickedUp:  true,
	StatusDelivered: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// IsValid reports whether s is one of the defined lifecycle statuses
func (s OrderStatus) IsValid() bool {
	return allStatuses[s]
}

// IsTerminal reports whether s permits no further transitions.
// Terminal orders are retained for history and never mutated again.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCompleted || s == StatusCancelled
}

// ValidateTransition checks whether an order may move from current to
// requested. It is pure and deterministic: no I/O, same inputs always
// produce the same result.
//
// Allowed edges:
//   - the linear chain pending -> accepted -> preparing -> picked_up -> delivered
//   - picked_up -> completed (administrative close-out for dine-in/takeaway)
//   - any non-terminal status -> cancelled
func ValidateTransition(current, requested OrderStatus) error {
	if !current.IsValid() || !requested.IsValid() {
		return ErrUnknownStatus
	}
	if current.IsTerminal() {
		return fmt.Errorf("cannot change order from %s to %s: %w", current, requested, ErrInvalidTransition)
	}
	if requested == StatusCancelled {
		return nil
	}
	if next, ok := forwardTransitions[current]; ok && requested == next {
		return nil
	}
	if current == StatusPickedUp && requested == StatusCompleted {
		return nil
	}
	return fmt.Errorf("cannot change order from %s to %s: %w", current, requested, ErrInvalidTransition)
}
