package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrConstraint       = errors.New("constraint violation")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Domain errors wrap the common sentinels so errors.Is matches on both the
// specific error and its category.
var (
	ErrUsernameExists = fmt.Errorf("username already exists: %w", ErrConflict)

	ErrStudentNotFound = fmt.Errorf("student not found: %w", ErrResourceNotFound)
	ErrRollNoExists    = fmt.Errorf("roll number already exists: %w", ErrConflict)

	ErrRoomNotFound       = fmt.Errorf("room not found: %w", ErrResourceNotFound)
	ErrRoomFull           = errors.New("room is full")
	ErrAllocationNotFound = fmt.Errorf("hostel allocation not found: %w", ErrResourceNotFound)

	ErrDriverNotFound     = fmt.Errorf("driver not found: %w", ErrResourceNotFound)
	ErrLicenseExists      = fmt.Errorf("license number already exists: %w", ErrConflict)
	ErrBusNotFound        = fmt.Errorf("bus not found: %w", ErrResourceNotFound)
	ErrRegistrationExists = fmt.Errorf("bus registration already exists: %w", ErrConflict)
	ErrRouteNotFound      = fmt.Errorf("route not found: %w", ErrResourceNotFound)
	ErrAlreadyAssigned    = errors.New("student is already assigned to this route")

	ErrAnnouncementNotFound = fmt.Errorf("announcement not found: %w", ErrResourceNotFound)
	ErrMessageNotFound      = fmt.Errorf("message not found: %w", ErrResourceNotFound)
)

// CustomError carries an underlying sentinel plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap makes CustomError transparent to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping the given sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewValidationError creates a CustomError for invalid input with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewNotFoundError creates a CustomError for a missing resource with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// Is reports whether target matches err or any of the extra errors.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
