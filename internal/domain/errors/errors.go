package errors

import (
	"net/http"

	"placebook/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrEmptyPlaceName = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_PLACE_NAME",
		"A place needs a name before it can be saved",
		"",
	)

	ErrDestinationNotSet = NewBaseError(
		http.StatusBadRequest,
		"DESTINATION_NOT_SET",
		"Resolve a destination address before requesting a route",
		"",
	)

	// Not-found errors
	ErrPlaceNotFound = NewBaseError(
		http.StatusNotFound,
		"PLACE_NOT_FOUND",
		"The place does not exist",
		"",
	)

	ErrAddressNotFound = NewBaseError(
		http.StatusNotFound,
		"ADDRESS_NOT_FOUND",
		"No coordinate matches this address",
		"",
	)

	ErrNoRouteFound = NewBaseError(
		http.StatusNotFound,
		"NO_ROUTE_FOUND",
		"No route exists between these points",
		"",
	)

	// Provider / transport errors
	ErrGeocodingFailed = NewBaseError(
		http.StatusBadGateway,
		"GEOCODING_FAILED",
		"The geocoding provider could not be reached",
		"",
	)

	ErrRoutingFailed = NewBaseError(
		http.StatusBadGateway,
		"ROUTING_FAILED",
		"The routing provider could not be reached",
		"",
	)

	// Location / permission errors
	ErrLocationDenied = NewBaseError(
		http.StatusForbidden,
		"LOCATION_DENIED",
		"Location access was denied; enable it in the device settings",
		"",
	)

	ErrLocationRestricted = NewBaseError(
		http.StatusForbidden,
		"LOCATION_RESTRICTED",
		"Location access is restricted on this device",
		"",
	)

	ErrLocationUnavailable = NewBaseError(
		http.StatusConflict,
		"LOCATION_UNAVAILABLE",
		"The current device location is not known yet",
		"",
	)

	// Concurrency outcome: a newer request replaced this one. Clients
	// drop this silently; only the winning request's result is shown.
	ErrRequestSuperseded = NewBaseError(
		http.StatusConflict,
		"REQUEST_SUPERSEDED",
		"A newer request replaced this one",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
