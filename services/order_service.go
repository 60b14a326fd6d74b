package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dinehub/dinehub-api/models"
)

// OrderService orchestrates the order lifecycle: creation, validated status
// transitions and rider assignment. Every successful mutation performs
// exactly one persistence write and emits exactly one realtime event; a
// failed call performs neither.
type OrderService struct {
	db       *gorm.DB
	riders   *RiderService
	notifier Notifier
}

// NewOrderService creates an order service over the given database and
// realtime notifier
func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &OrderService{
		db:       db,
		riders:   NewRiderService(db),
		notifier: notifier,
	}
}

// CreateOrderItemInput is one requested line item
type CreateOrderItemInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	AddonIDs   []uint `json:"addon_ids"`
	Note       string `json:"note"`
}

// CreateOrderRequest is the payload accepted by Create
type CreateOrderRequest struct {
	OrderType     models.OrderType       `json:"order_type" binding:"required"`
	TableID       *uint                  `json:"table_id"`
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
	Items         []CreateOrderItemInput `json:"items" binding:"required"`
}

// Create validates the request against the actor's restaurant, snapshots
// current menu prices into line items, persists the order in status pending
// and emits a single newOrder event on the restaurant's channel.
func (s *OrderService) Create(actor models.Actor, req *CreateOrderRequest) (*models.Order, error) {
	if !req.OrderType.IsValid() {
		return nil, ErrInvalidOrderType
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	// dine_in orders always carry a table; other types never do
	switch req.OrderType {
	case models.OrderTypeDineIn:
		if req.TableID == nil {
			return nil, ErrTableRequired
		}
		var count int64
		if err := s.db.Model(&models.DiningTable{}).
			Where("id = ? AND restaurant_id = ?", *req.TableID, actor.RestaurantID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrTableNotFound
		}
	default:
		if req.TableID != nil {
			return nil, ErrTableNotAllowed
		}
	}

	// Snapshot current menu prices into immutable line items
	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		var menuItem models.MenuItem
		err := s.db.Where("id = ? AND restaurant_id = ?", in.MenuItemID, actor.RestaurantID).
			First(&menuItem).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMenuItemNotFound
			}
			return nil, err
		}
		if !menuItem.Available {
			return nil, ErrMenuItemUnavailable
		}

		item := models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   in.Quantity,
			UnitPrice:  menuItem.Price,
			Note:       in.Note,
		}

		unit := menuItem.Price
		if len(in.AddonIDs) > 0 {
			var addons []models.MenuItemAddon
			if err := s.db.Where("id IN ? AND menu_item_id = ?", in.AddonIDs, menuItem.ID).
				Find(&addons).Error; err != nil {
				return nil, err
			}
			if len(addons) != len(in.AddonIDs) {
				return nil, ErrAddonNotFound
			}
			for _, a := range addons {
				item.Addons = append(item.Addons, models.OrderItemAddon{
					Name:  a.Name,
					Price: a.Price,
				})
				unit += a.Price
			}
		}

		total += unit * float64(in.Quantity)
		items = append(items, item)
	}

	order := models.Order{
		OrderNumber:   uuid.NewString(),
		RestaurantID:  actor.RestaurantID,
		OrderType:     req.OrderType,
		Status:        models.StatusPending,
		TotalAmount:   total,
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, err
	}

	log.Info().
		Uint("order_id", order.ID).
		Uint("restaurant_id", order.RestaurantID).
		Str("order_type", string(order.OrderType)).
		Float64("total", order.TotalAmount).
		Msg("order created")

	s.notifier.Broadcast(order.RestaurantID, EventNewOrder, &order)
	return &order, nil
}

// Transition moves an order to the requested status on behalf of the actor.
// The optional riderID is resolved against the rider directory and written
// atomically with the status: both fields update together or neither does.
// On success exactly one orderStatusUpdated event is emitted.
func (s *OrderService) Transition(actor models.Actor, orderID uint, requested models.OrderStatus, riderID *uint) (*models.Order, error) {
	order, err := s.loadScoped(actor, orderID)
	if err != nil {
		return nil, err
	}

	if err := models.ValidateTransition(order.Status, requested); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": requested}
	if riderID != nil {
		if order.OrderType != models.OrderTypeDelivery {
			return nil, ErrNotDeliveryOrder
		}
		if _, err := s.riders.Find(*riderID, actor.RestaurantID); err != nil {
			return nil, err
		}
		updates["rider_id"] = *riderID
	}

	// Compare-and-swap on the previously observed status: if a concurrent
	// transition got there first, zero rows match and the caller loses.
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}

	order.Status = requested
	if riderID != nil {
		order.RiderID = riderID
	}

	log.Info().
		Uint("order_id", order.ID).
		Uint("restaurant_id", order.RestaurantID).
		Str("status", string(order.Status)).
		Msg("order status updated")

	s.notifier.Broadcast(order.RestaurantID, EventOrderStatusUpdated, &StatusUpdatePayload{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		RiderID:     order.RiderID,
	})
	return order, nil
}

// AssignRider attaches or reassigns a rider to a delivery order without
// changing its status. It emits the same orderStatusUpdated event shape as
// Transition, carrying the unchanged current status.
func (s *OrderService) AssignRider(actor models.Actor, orderID, riderID uint) (*models.Order, error) {
	order, err := s.loadScoped(actor, orderID)
	if err != nil {
		return nil, err
	}

	if order.OrderType != models.OrderTypeDelivery {
		return nil, ErrNotDeliveryOrder
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("cannot assign rider to a %s order: %w", order.Status, models.ErrInvalidTransition)
	}

	if _, err := s.riders.Find(riderID, actor.RestaurantID); err != nil {
		return nil, err
	}

	// Guard on the observed status so assignment cannot land on an order
	// that a concurrent transition just closed out.
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("rider_id", riderID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}

	order.RiderID = &riderID

	log.Info().
		Uint("order_id", order.ID).
		Uint("rider_id", riderID).
		Msg("rider assigned")

	s.notifier.Broadcast(order.RestaurantID, EventOrderStatusUpdated, &StatusUpdatePayload{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		RiderID:     order.RiderID,
	})
	return order, nil
}

// Get returns a single order with its items, scoped to the actor's
// restaurant. Dashboards call it to resync after a reconnect.
func (s *OrderService) Get(actor models.Actor, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Addons").Preload("Rider").
		Where("id = ? AND restaurant_id = ?", orderID, actor.RestaurantID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// OrderList is a paginated page of orders for the dashboard board view
type OrderList struct {
	Items []models.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// List returns the restaurant's orders, newest first, optionally filtered
// by status
func (s *OrderService) List(actor models.Actor, status *models.OrderStatus, page, limit int) (*OrderList, error) {
	if status != nil && !status.IsValid() {
		return nil, models.ErrUnknownStatus
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	query := s.db.Model(&models.Order{}).Where("restaurant_id = ?", actor.RestaurantID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	err := query.Preload("Items.Addons").
		Order("id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return &OrderList{Items: orders, Total: total, Page: page, Limit: limit}, nil
}

// loadScoped fetches an order inside the actor's tenant scope. A
// cross-tenant id is indistinguishable from a missing one.
func (s *OrderService) loadScoped(actor models.Actor, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("id = ? AND restaurant_id = ?", orderID, actor.RestaurantID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
