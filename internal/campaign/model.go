package campaign

import "time"

// Campaign is a time-boxed, stock-capped pre-sale window. StockSold is the
// authoritative server-side count of units committed across all orders.
type Campaign struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Active       bool      `json:"active"`
	OpensAt      time.Time `json:"opens_at"`
	ClosesAt     time.Time `json:"closes_at"`
	DeliveryDate time.Time `json:"delivery_date"`
	DeliverySlot string    `json:"delivery_slot"`
	StockSold    int       `json:"stock_sold"`
	StockCap     int       `json:"stock_cap"`
	QRURL        string    `json:"qr_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Snapshot is what the storefront sees: the campaign plus its availability,
// derived exactly once at fetch time. It is not reactive to wall-clock
// passage; a new snapshot requires a new fetch.
type Snapshot struct {
	Campaign  *Campaign `json:"campaign"`
	IsClosed  bool      `json:"is_closed"`
	Remaining int       `json:"remaining"`
}

type CreateInput struct {
	Name         string    `json:"name"`
	OpensAt      time.Time `json:"opens_at"`
	ClosesAt     time.Time `json:"closes_at"`
	DeliveryDate time.Time `json:"delivery_date"`
	DeliverySlot string    `json:"delivery_slot"`
	StockCap     int       `json:"stock_cap"`
	QRURL        string    `json:"qr_url"`
}

type UpdateInput struct {
	Name         *string    `json:"name"`
	Active       *bool      `json:"active"`
	OpensAt      *time.Time `json:"opens_at"`
	ClosesAt     *time.Time `json:"closes_at"`
	DeliveryDate *time.Time `json:"delivery_date"`
	DeliverySlot *string    `json:"delivery_slot"`
	StockCap     *int       `json:"stock_cap"`
	QRURL        *string    `json:"qr_url"`
}
