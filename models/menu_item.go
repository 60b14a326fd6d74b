package models

import (
	"time"
)

// MenuItem is a sellable dish. Order creation snapshots its current price
// into the order's line items; the item itself stays mutable for the menu
// editors, which live outside this service.
type MenuItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	RestaurantID uint            `gorm:"not null;index" json:"restaurant_id"`
	Name         string          `gorm:"not null" json:"name"`
	Price        float64         `gorm:"not null" json:"price"`
	Available    bool            `gorm:"not null;default:true" json:"available"`
	Addons       []MenuItemAddon `gorm:"foreignKey:MenuItemID" json:"addons,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// MenuItemAddon is an optional priced extra offered for a menu item
type MenuItemAddon struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MenuItemID uint    `gorm:"not null;index" json:"menu_item_id"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the MenuItemAddon model
func (MenuItemAddon) TableName() string {
	return "menu_item_addons"
}
