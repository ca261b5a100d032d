package order

import (
	"time"

	"flavis-be/internal/draft"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusVoided  OrderStatus = "VOIDED"
)

// Order is a confirmed pre-sale purchase. Customer identity is snapshotted
// onto the order; the customers table only gets a row when the buyer asked
// to be remembered.
type Order struct {
	ID            uint               `json:"id"`
	CampaignID    uint               `json:"campaign_id"`
	CustomerPhone string             `json:"customer_phone"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Total         float64            `json:"total"`
	ReceiptURL    string             `json:"receipt_url"`
	DeliveryMode  draft.DeliveryMode `json:"delivery_mode"`
	Address       *draft.Address     `json:"address,omitempty"`
	Status        OrderStatus        `json:"status"`
	Seen          bool               `json:"seen"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Items         []OrderItem        `json:"items"`
}

type OrderItem struct {
	ID        uint           `json:"id"`
	OrderID   uint           `json:"order_id"`
	Kind      draft.LineKind `json:"kind"`
	RefID     uint           `json:"ref_id"`
	Quantity  int            `json:"quantity"`
	UnitPrice float64        `json:"unit_price"`
	Subtotal  float64        `json:"subtotal"`
}
