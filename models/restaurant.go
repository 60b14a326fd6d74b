package models

import (
	"time"
)

// Restaurant is the tenant anchor: every order, rider, table and menu item
// belongs to exactly one restaurant, and realtime events are scoped to it.
type Restaurant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Restaurant model
func (Restaurant) TableName() string {
	return "restaurants"
}

// DiningTable is a physical table inside a restaurant, referenced by
// dine-in orders
type DiningTable struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Label        string    `gorm:"not null" json:"label"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the DiningTable model
func (DiningTable) TableName() string {
	return "dining_tables"
}
