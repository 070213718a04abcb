package model

// Machine is a catalog entry shown on the machines screen.
type Machine struct {
	ID       int64                  `json:"id"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	Image    string                 `json:"image"`
	Rates    map[RentalType]float64 `json:"rates"`
}

// Provider is a rental company presented during provider matching.
type Provider struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Distance string  `json:"distance"`
	Phone    string  `json:"phone,omitempty"`
}
