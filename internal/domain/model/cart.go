package model

// RentalType describes how a machine is billed.
type RentalType string

const (
	RentalTypeTrip    RentalType = "trip"
	RentalTypeDaily   RentalType = "daily"
	RentalTypeMonthly RentalType = "monthly"
)

// Valid reports whether the rental type is one of the known billing modes.
func (t RentalType) Valid() bool {
	switch t {
	case RentalTypeTrip, RentalTypeDaily, RentalTypeMonthly:
		return true
	default:
		return false
	}
}

// CartItem is one configured equipment line that has not been ordered yet.
type CartItem struct {
	CartID     string     `json:"cartId"`
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	Image      string     `json:"image,omitempty"`
	RentalType RentalType `json:"rentalType,omitempty"`
	Driver     string     `json:"driver,omitempty"`
	Quantity   int        `json:"quantity"`
	Price      float64    `json:"price"`
	StartDate  string     `json:"startDate,omitempty"`
	EndDate    string     `json:"endDate,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// CartItemPatch carries the fields to merge into an existing cart item.
// Nil fields are left untouched.
type CartItemPatch struct {
	Title      *string     `json:"title,omitempty"`
	Subtitle   *string     `json:"subtitle,omitempty"`
	Image      *string     `json:"image,omitempty"`
	RentalType *RentalType `json:"rentalType,omitempty"`
	Driver     *string     `json:"driver,omitempty"`
	Quantity   *int        `json:"quantity,omitempty"`
	Price      *float64    `json:"price,omitempty"`
	StartDate  *string     `json:"startDate,omitempty"`
	EndDate    *string     `json:"endDate,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
}

// Apply merges the patch into item and returns the result.
func (p CartItemPatch) Apply(item CartItem) CartItem {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Subtitle != nil {
		item.Subtitle = *p.Subtitle
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.RentalType != nil {
		item.RentalType = *p.RentalType
	}
	if p.Driver != nil {
		item.Driver = *p.Driver
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.StartDate != nil {
		item.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		item.EndDate = *p.EndDate
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	return item
}
