package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinehub/dinehub-api/config"
	"github.com/dinehub/dinehub-api/middleware"
	"github.com/dinehub/dinehub-api/services"
)

// ListRiders handles GET /api/v1/riders - returns the restaurant's riders
// for the assignment picker on the dashboard
func ListRiders(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	riders, err := services.NewRiderService(config.GetDB()).List(actor.RestaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "DATABASE_ERROR", "message": "Failed to load riders"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    riders,
	})
}
