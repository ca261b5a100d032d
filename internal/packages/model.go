package packages

import "time"

// Pack is a fixed-price bundle of cookies sold as a single cart line.
type Pack struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Active      bool      `json:"active"`
	CookieIDs   []uint    `json:"cookie_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PackInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Active      bool    `json:"active"`
	CookieIDs   []uint  `json:"cookie_ids"`
}
