package dto

// WebResponse is a generic API response structure
type WebResponse[T any] struct {
	Data T `json:"data"`
}
