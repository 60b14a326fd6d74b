package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// allowedEdges is the complete set of legal transitions; everything else
// must be rejected
var allowedEdges = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusDelivered, StatusCompleted, StatusCancelled},
}

func isAllowed(from, to OrderStatus) bool {
	for _, next := range allowedEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func TestValidateTransitionAllowedEdges(t *testing.T) {
	for from, targets := range allowedEdges {
		for _, to := range targets {
			err := ValidateTransition(from, to)
			assert.NoError(t, err, "%s -> %s should be allowed", from, to)
		}
	}
}

func TestValidateTransitionRejectsEverythingElse(t *testing.T) {
	statuses := []OrderStatus{
		StatusPending, StatusAccepted, StatusPreparing,
		StatusPickedUp, StatusDelivered, StatusCompleted, StatusCancelled,
	}

	// Exhaustively check every (current, requested) pair outside the edge set
	for _, from := range statuses {
		for _, to := range statuses {
			if isAllowed(from, to) {
				continue
			}
			err := ValidateTransition(from, to)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s should be rejected", from, to)
		}
	}
}

func TestValidateTransitionTerminalStatesRejectEverything(t *testing.T) {
	terminal := []OrderStatus{StatusDelivered, StatusCompleted, StatusCancelled}
	statuses := []OrderStatus{
		StatusPending, StatusAccepted, StatusPreparing,
		StatusPickedUp, StatusDelivered, StatusCompleted, StatusCancelled,
	}

	// Terminal is terminal: even cancellation is rejected
	for _, from := range terminal {
		for _, to := range statuses {
			err := ValidateTransition(from, to)
			assert.ErrorIs(t, err, ErrInvalidTransition, "terminal %s must reject %s", from, to)
		}
	}
}

func TestValidateTransitionNonAdjacentJumps(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
	}{
		{"skip to picked_up", StatusPending, StatusPickedUp},
		{"skip to delivered", StatusAccepted, StatusDelivered},
		{"early close-out", StatusPreparing, StatusCompleted},
		{"reverse transition", StatusPreparing, StatusAccepted},
		{"self transition", StatusAccepted, StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	tests := []struct {
		name      string
		from      OrderStatus
		requested OrderStatus
	}{
		{"unknown requested", StatusPending, "shipped"},
		{"unknown current", "submitted", StatusAccepted},
		{"empty requested", StatusPending, ""},
		{"both unknown", "foo", "bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.requested)
			assert.ErrorIs(t, err, ErrUnknownStatus)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, StatusPreparing.IsTerminal())
	assert.False(t, StatusPickedUp.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
