package usecase

import (
	"fmt"
	"math"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
)

// Driver display strings shown on the configuration screen.
const (
	DriverIncluded = "مع سائق"
	DriverExcluded = "بدون سائق"
)

var machines = []model.Machine{
	{ID: 1, Title: "Excavator", Subtitle: "حفار", Image: "https://images.boklen.app/machines/excavator.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 900, model.RentalTypeDaily: 1500, model.RentalTypeMonthly: 36000}},
	{ID: 2, Title: "Loader", Subtitle: "شيول", Image: "https://images.boklen.app/machines/loader.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 700, model.RentalTypeDaily: 1200, model.RentalTypeMonthly: 28000}},
	{ID: 3, Title: "Crane", Subtitle: "رافعة", Image: "https://images.boklen.app/machines/crane.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 1500, model.RentalTypeDaily: 2500, model.RentalTypeMonthly: 60000}},
	{ID: 4, Title: "Dump Truck", Subtitle: "قلاب", Image: "https://images.boklen.app/machines/dump-truck.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 450, model.RentalTypeDaily: 1000, model.RentalTypeMonthly: 22000}},
	{ID: 5, Title: "Bulldozer", Subtitle: "بلدوزر", Image: "https://images.boklen.app/machines/bulldozer.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 1100, model.RentalTypeDaily: 1800, model.RentalTypeMonthly: 42000}},
	{ID: 6, Title: "Water Tanker", Subtitle: "وايت ماء", Image: "https://images.boklen.app/machines/water-tanker.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 250, model.RentalTypeDaily: 600, model.RentalTypeMonthly: 14000}},
	{ID: 7, Title: "Generator", Subtitle: "مولد كهربائي", Image: "https://images.boklen.app/machines/generator.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 200, model.RentalTypeDaily: 300, model.RentalTypeMonthly: 7000}},
	{ID: 8, Title: "Forklift", Subtitle: "رافعة شوكية", Image: "https://images.boklen.app/machines/forklift.png",
		Rates: map[model.RentalType]float64{model.RentalTypeTrip: 300, model.RentalTypeDaily: 550, model.RentalTypeMonthly: 12000}},
}

// ConfigureRequest is what the machine configuration screen submits.
type ConfigureRequest struct {
	MachineID  int64
	RentalType model.RentalType
	WithDriver bool
	Quantity   int
	StartDate  string
	EndDate    string
	Notes      string
}

// Catalog serves the fixed machine list and computes add-time prices.
type Catalog struct {
	byID map[int64]model.Machine
}

// NewCatalog constructs the catalog.
func NewCatalog() *Catalog {
	byID := make(map[int64]model.Machine, len(machines))
	for _, m := range machines {
		byID[m.ID] = copyMachine(m)
	}
	return &Catalog{byID: byID}
}

// Machines returns the catalog in display order.
func (c *Catalog) Machines() []model.Machine {
	out := make([]model.Machine, len(machines))
	for i, m := range machines {
		out[i] = copyMachine(c.byID[m.ID])
	}
	return out
}

// Machine looks up a catalog entry.
func (c *Catalog) Machine(id int64) (model.Machine, error) {
	m, ok := c.byID[id]
	if !ok {
		return model.Machine{}, fmt.Errorf("machine %d: %w", id, domainErrors.ErrUnknownMachine)
	}
	return copyMachine(m), nil
}

// Quote returns rate times quantity for the rental type.
func (c *Catalog) Quote(machineID int64, rentalType model.RentalType, quantity int) (float64, error) {
	m, err := c.Machine(machineID)
	if err != nil {
		return 0, err
	}
	rate, ok := m.Rates[rentalType]
	if !ok || !rentalType.Valid() {
		return 0, fmt.Errorf("%w: rental type %q", domainErrors.ErrInvalidPrice, rentalType)
	}
	if quantity <= 0 {
		quantity = 1
	}
	return math.Round(rate*float64(quantity)*100) / 100, nil
}

// ConfigureItem builds a cart line from a catalog entry. The price is fixed
// at this point and never recomputed.
func (c *Catalog) ConfigureItem(req ConfigureRequest) (model.CartItem, error) {
	m, err := c.Machine(req.MachineID)
	if err != nil {
		return model.CartItem{}, err
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	price, err := c.Quote(m.ID, req.RentalType, quantity)
	if err != nil {
		return model.CartItem{}, err
	}

	driver := DriverExcluded
	if req.WithDriver {
		driver = DriverIncluded
	}
	return model.CartItem{
		ID:         m.ID,
		Title:      m.Title,
		Subtitle:   m.Subtitle,
		Image:      m.Image,
		RentalType: req.RentalType,
		Driver:     driver,
		Quantity:   quantity,
		Price:      price,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      req.Notes,
	}, nil
}

func copyMachine(m model.Machine) model.Machine {
	rates := make(map[model.RentalType]float64, len(m.Rates))
	for k, v := range m.Rates {
		rates[k] = v
	}
	m.Rates = rates
	return m
}
