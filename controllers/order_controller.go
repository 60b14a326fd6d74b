package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dinehub/dinehub-api/config"
	"github.com/dinehub/dinehub-api/middleware"
	"github.com/dinehub/dinehub-api/models"
	"github.com/dinehub/dinehub-api/services"
)

// notifier is the realtime channel used by order mutations. It is wired at
// startup (and by tests) via SetNotifier; until then events are discarded.
var notifier services.Notifier = services.NopNotifier{}

// SetNotifier installs the realtime notifier used by the order handlers
func SetNotifier(n services.Notifier) {
	if n == nil {
		n = services.NopNotifier{}
	}
	notifier = n
}

func orderService() *services.OrderService {
	return services.NewOrderService(config.GetDB(), notifier)
}

// UpdateOrderStatusRequest represents the request body for a status transition
type UpdateOrderStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	RiderID *uint  `json:"rider_id"`
}

// AssignRiderRequest represents the request body for a rider assignment
type AssignRiderRequest struct {
	RiderID uint `json:"rider_id" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order in status
// pending and pushes a newOrder event to the restaurant's channel
func CreateOrder(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := orderService().Create(actor, &req)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - validates and
// applies a status transition, optionally attaching a rider in the same
// atomic write
func UpdateOrderStatus(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := orderService().Transition(actor, orderID, models.OrderStatus(req.Status), req.RiderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignRider handles PATCH /api/v1/orders/:id/rider - attaches or
// reassigns a rider to a delivery order without changing its status
func AssignRider(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := orderService().AssignRider(actor, orderID, req.RiderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns one order with its items
func GetOrder(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := orderService().Get(actor, orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - returns the restaurant's orders,
// newest first, optionally filtered by ?status=
func ListOrders(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := models.OrderStatus(raw)
		status = &s
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := orderService().List(actor, status, page, limit)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    list,
	})
}

// parseIDParam reads the numeric :id path parameter, writing a 400 envelope
// on failure
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order id",
			},
		})
		return 0, false
	}
	return uint(id), true
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Could not extract actor from token",
		},
	})
}

// respondOrderError maps expected service errors onto the HTTP error
// envelope. Everything unexpected becomes a generic 500.
func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"code": "ORDER_NOT_FOUND", "message": "Order not found"},
		})
	case errors.Is(err, services.ErrRiderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"code": "RIDER_NOT_FOUND", "message": "Rider not found"},
		})
	case errors.Is(err, models.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "INVALID_STATUS", "message": "Invalid status"},
		})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "INVALID_TRANSITION", "message": err.Error()},
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"code": "CONFLICT", "message": "Order was updated concurrently, reload and retry"},
		})
	case errors.Is(err, services.ErrEmptyItems),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidOrderType),
		errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrMenuItemUnavailable),
		errors.Is(err, services.ErrAddonNotFound),
		errors.Is(err, services.ErrTableRequired),
		errors.Is(err, services.ErrTableNotAllowed),
		errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrNotDeliveryOrder):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "VALIDATION_ERROR", "message": err.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "DATABASE_ERROR", "message": "Internal server error"},
		})
	}
}
