package serverutils

// BaseResponse is the generic JSON envelope for endpoints that do not carry
// an operation-specific shape (errors, method guards).
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}
