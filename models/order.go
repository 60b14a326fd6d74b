package models

import (
	"time"
)

// OrderType distinguishes how an order is fulfilled. It is immutable after
// creation and drives per-type constraints (table for dine-in, rider for
// delivery).
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

// IsValid reports whether t is one of the defined order types
func (t OrderType) IsValid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeaway || t == OrderTypeDelivery
}

// Order represents a customer order in the system. Orders are never deleted;
// terminal orders are retained for history and reporting.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"uniqueIndex;not null" json:"order_number"` // opaque public identifier, set once at creation
	RestaurantID  uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    Restaurant  `gorm:"foreignKey:RestaurantID" json:"-"`
	OrderType     OrderType   `gorm:"not null" json:"order_type"`
	Status        OrderStatus `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount   float64     `gorm:"not null" json:"total_amount"`    // derived from items at creation, never recomputed
	TableID       *uint       `gorm:"index" json:"table_id,omitempty"` // required iff order_type = dine_in
	RiderID       *uint       `gorm:"index" json:"rider_id,omitempty"` // delivery orders only
	Rider         *Rider      `gorm:"foreignKey:RiderID" json:"rider,omitempty"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item snapshot taken at order creation. Items are
// immutable after creation; prices are copied from the menu so later menu
// edits do not change historical orders.
type OrderItem struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	OrderID    uint             `gorm:"not null;index" json:"order_id"`
	MenuItemID uint             `gorm:"not null" json:"menu_item_id"`
	Name       string           `gorm:"not null" json:"name"`
	Quantity   int              `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  float64          `gorm:"not null" json:"unit_price"`
	Note       string           `json:"note,omitempty"`
	Addons     []OrderItemAddon `gorm:"foreignKey:OrderItemID" json:"addons,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemAddon is a priced add-on snapshot attached to a line item
type OrderItemAddon struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderItemID uint    `gorm:"not null;index" json:"order_item_id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the OrderItemAddon model
func (OrderItemAddon) TableName() string {
	return "order_item_addons"
}
