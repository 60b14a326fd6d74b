package models

import (
	"time"
)

// Rider is a delivery rider employed by a single restaurant. Assignment to
// an order is only meaningful for delivery orders.
type Rider struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Available    bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Rider model
func (Rider) TableName() string {
	return "riders"
}
