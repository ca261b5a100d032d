package draft

// DeliveryMode selects how the order is fulfilled. Pickup needs no address;
// delivery requires one.
type DeliveryMode string

const (
	ModePickup   DeliveryMode = "PICKUP"
	ModeDelivery DeliveryMode = "DELIVERY"
)

type LineKind string

const (
	LineCookie LineKind = "COOKIE"
	LinePack   LineKind = "PACK"
)

// Line is one cart entry: a cookie or a pack reference plus a quantity.
type Line struct {
	Kind      LineKind `json:"kind"`
	RefID     uint     `json:"ref_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
}

// Address is the delivery sub-structure, present only when the mode
// requires it.
type Address struct {
	Street    string `json:"street"`
	District  string `json:"district"`
	Reference string `json:"reference,omitempty"`
}

// Draft is the in-progress order form. It survives reloads through the
// client-state store and is cleared on a successful order. Totals are
// always derived from the lines, never stored on their own.
type Draft struct {
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Phone         string       `json:"phone"`
	SaveData      bool         `json:"save_data"`
	TermsAccepted bool         `json:"terms_accepted"`
	ReceiptURL    string       `json:"receipt_url"`
	DeliveryMode  DeliveryMode `json:"delivery_mode"`
	Address       *Address     `json:"address,omitempty"`
	Lines         []Line       `json:"lines"`
}

// TotalQuantity sums the cart's units. Negative quantities never count;
// validation rejects them separately.
func (d *Draft) TotalQuantity() int {
	total := 0
	for _, l := range d.Lines {
		if l.Quantity > 0 {
			total += l.Quantity
		}
	}
	return total
}

// Total derives the order amount from the lines.
func (d *Draft) Total() float64 {
	var total float64
	for _, l := range d.Lines {
		if l.Quantity > 0 {
			total += l.UnitPrice * float64(l.Quantity)
		}
	}
	return total
}

// Empty is the initial shape the form returns to after a successful order.
func Empty() Draft {
	return Draft{DeliveryMode: ModePickup}
}
