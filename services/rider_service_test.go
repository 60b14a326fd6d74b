package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dinehub/dinehub-api/models"
)

func TestRiderServiceFind(t *testing.T) {
	f := setupOrderService(t)
	riders := NewRiderService(f.db)

	t.Run("finds rider within the restaurant", func(t *testing.T) {
		rider, err := riders.Find(f.riderA.ID, f.restaurantA.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Aidos", rider.Name)
	})

	t.Run("cross-tenant rider looks missing", func(t *testing.T) {
		_, err := riders.Find(f.riderB.ID, f.restaurantA.ID)
		assert.ErrorIs(t, err, ErrRiderNotFound)
	})

	t.Run("unknown rider id", func(t *testing.T) {
		_, err := riders.Find(99999, f.restaurantA.ID)
		assert.ErrorIs(t, err, ErrRiderNotFound)
	})
}

func TestRiderServiceList(t *testing.T) {
	f := setupOrderService(t)
	riders := NewRiderService(f.db)

	f.db.Create(&models.Rider{RestaurantID: f.restaurantA.ID, Name: "Zhanar", Available: false})

	list, err := riders.List(f.restaurantA.ID)
	assert.NoError(t, err)
	assert.Len(t, list, 2, "Only the restaurant's own riders are listed")
	assert.Equal(t, "Aidos", list[0].Name, "Available riders come first")
	assert.Equal(t, "Zhanar", list[1].Name)
}
