package errors

var (
	ErrNotAuthenticated = NewTypedError("User not authenticated", ErrorTypeUnauthenticated)
	ErrInvalidID        = NewTypedError("Invalid id, must be a positive integer", ErrorTypeValidation)
	ErrMissingBaseURL   = NewTypedError("API base URL is not configured", ErrorTypeInternalServerError)
)
