package dto

import "github.com/boklen/rentals/internal/domain/model"

// CartItemRequest adds a manually priced line.
type CartItemRequest struct {
	ID         int64            `json:"id"`
	Title      string           `json:"title" binding:"required"`
	Subtitle   string           `json:"subtitle"`
	Image      string           `json:"image"`
	RentalType model.RentalType `json:"rentalType"`
	Driver     string           `json:"driver"`
	Quantity   int              `json:"quantity" binding:"gte=0"`
	Price      float64          `json:"price"`
	StartDate  string           `json:"startDate"`
	EndDate    string           `json:"endDate"`
	Notes      string           `json:"notes"`
}

// ToModel converts the request into a cart line.
func (r CartItemRequest) ToModel() model.CartItem {
	return model.CartItem{
		ID:         r.ID,
		Title:      r.Title,
		Subtitle:   r.Subtitle,
		Image:      r.Image,
		RentalType: r.RentalType,
		Driver:     r.Driver,
		Quantity:   r.Quantity,
		Price:      r.Price,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Notes:      r.Notes,
	}
}

// ConfigureRequest adds a catalog machine priced by the server.
type ConfigureRequest struct {
	MachineID  int64            `json:"machineId" binding:"required"`
	RentalType model.RentalType `json:"rentalType" binding:"required,oneof=trip daily monthly"`
	WithDriver bool             `json:"withDriver"`
	Quantity   int              `json:"quantity" binding:"gte=0"`
	StartDate  string           `json:"startDate"`
	EndDate    string           `json:"endDate"`
	Notes      string           `json:"notes"`
}

// CartResponse is the cart with its running total.
type CartResponse struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
}

// StartDateRequest edits the start date from the order summary.
type StartDateRequest struct {
	StartDate string `json:"startDate" binding:"required"`
}
