package dto

// ErrorResponse is the standard error payload for all endpoints
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
