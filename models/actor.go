package models

// Actor identifies the authenticated caller of a service operation. It is
// built from validated JWT claims by the auth middleware; services trust it
// and use RestaurantID as the tenant scope for every lookup.
type Actor struct {
	UserID       string `json:"user_id"`
	Role         string `json:"role"` // "admin", "kitchen", "rider", "customer" or "pos"
	RestaurantID uint   `json:"restaurant_id"`
}

// Actor roles understood by the API
const (
	RoleAdmin    = "admin"
	RoleKitchen  = "kitchen"
	RoleRider    = "rider"
	RoleCustomer = "customer"
	RolePOS      = "pos"
)
