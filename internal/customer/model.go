package customer

import "time"

// Customer is keyed by phone number; the storefront uses it to prefill the
// order form for returning buyers.
type Customer struct {
	Phone     string    `json:"phone"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Aggregates for the admin listing, zero unless the query joins orders.
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}
