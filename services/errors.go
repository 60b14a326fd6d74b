package services

import (
	"errors"
)

// Expected (non-fatal) service outcomes. Controllers map these onto the
// HTTP error envelope with errors.Is; anything else is surfaced as a
// generic server error.
var (
	// ErrOrderNotFound covers both a missing order id and a cross-tenant
	// order id, so callers cannot probe another restaurant's orders.
	ErrOrderNotFound = errors.New("order not found")

	// ErrRiderNotFound covers both a missing rider id and a cross-tenant one
	ErrRiderNotFound = errors.New("rider not found")

	// ErrConflict signals that a concurrent update won the race; the caller
	// should reload the order and decide again.
	ErrConflict = errors.New("order was updated concurrently")

	ErrEmptyItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be at least 1")
	ErrInvalidOrderType    = errors.New("invalid order type")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrAddonNotFound       = errors.New("addon not found")
	ErrTableRequired       = errors.New("table is required for dine-in orders")
	ErrTableNotAllowed     = errors.New("table is only allowed for dine-in orders")
	ErrTableNotFound       = errors.New("table not found")
	ErrNotDeliveryOrder    = errors.New("rider can only be assigned to delivery orders")
)
