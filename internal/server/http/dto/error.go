package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IDResponse returns the identifier of a created resource.
type IDResponse struct {
	ID string `json:"id"`
}
