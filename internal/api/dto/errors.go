package dto

// APIError represents a structured error response.
// All error responses from the API use this format for consistency.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Common error codes
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeUpstreamFailed = "upstream_failed"
	ErrCodeScrapeFailed   = "scrape_failed"
	ErrCodeInternalError  = "internal_error"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// BadRequestError creates a bad request error response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// UnauthorizedError creates an unauthorized error response.
func UnauthorizedError(message string) APIError {
	return NewAPIError(ErrCodeUnauthorized, message)
}

// UpstreamFailedError creates an error response for a failed marketplace
// call, carrying the upstream status and body as detail.
func UpstreamFailedError(detail string) APIError {
	e := NewAPIError(ErrCodeUpstreamFailed, "marketplace request failed")
	e.Detail = detail
	return e
}

// ScrapeFailedError creates an error response for a failed scrape.
func ScrapeFailedError(detail string) APIError {
	e := NewAPIError(ErrCodeScrapeFailed, "scrape request failed")
	e.Detail = detail
	return e
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}
