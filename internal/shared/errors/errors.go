// Package errors provides application-level error types and utilities.
// It defines the error taxonomy shared by use cases, repositories and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation             ErrorType = "validation_error"
	ErrorTypeNotFound               ErrorType = "not_found"
	ErrorTypeConflict               ErrorType = "conflict"
	ErrorTypeUnauthorized           ErrorType = "unauthorized"
	ErrorTypeForbidden              ErrorType = "forbidden"
	ErrorTypeInternal               ErrorType = "internal_error"
	ErrorTypeBadRequest             ErrorType = "bad_request"
	ErrorTypeInsufficientInventory  ErrorType = "insufficient_inventory"
	ErrorTypeInvalidStateTransition ErrorType = "invalid_state_transition"
	ErrorTypeAlreadyDrawn           ErrorType = "already_drawn"
	ErrorTypeNoPaidTickets          ErrorType = "no_paid_tickets"
	ErrorTypeRaffleNotOpen          ErrorType = "raffle_not_open"
	ErrorTypePersistence            ErrorType = "persistence_failure"
)

// MetaRemaining is the Meta key carrying the live remaining ticket count.
const MetaRemaining = "remaining"

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Code    int                    `json:"code"`
	Details string                 `json:"details,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying infrastructure error, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewInsufficientInventoryError reports that fewer tickets are available than requested.
// remaining is the live count of available tickets at evaluation time.
func NewInsufficientInventoryError(requested, remaining int) *AppError {
	e := newAppError(ErrorTypeInsufficientInventory, http.StatusConflict,
		fmt.Sprintf("only %d tickets remain available", remaining),
		[]string{fmt.Sprintf("requested %d", requested)})
	e.Meta = map[string]interface{}{MetaRemaining: remaining}
	return e
}

// NewInvalidStateTransitionError creates an error for a forbidden state change.
func NewInvalidStateTransitionError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidStateTransition, http.StatusConflict, message, details)
}

// NewAlreadyDrawnError creates an error for a raffle whose draw already happened.
func NewAlreadyDrawnError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAlreadyDrawn, http.StatusConflict, message, details)
}

// NewNoPaidTicketsError creates an error for a draw without any paid ticket.
func NewNoPaidTicketsError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNoPaidTickets, http.StatusUnprocessableEntity, message, details)
}

// NewRaffleNotOpenError creates an error for purchases against a raffle that is not selling.
func NewRaffleNotOpenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeRaffleNotOpen, http.StatusConflict, message, details)
}

// NewPersistenceError wraps a transient storage failure. The cause is kept for
// errors.Is/As but never rendered to API clients.
func NewPersistenceError(message string, cause error) *AppError {
	e := newAppError(ErrorTypePersistence, http.StatusServiceUnavailable, message, nil)
	e.cause = cause
	return e
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func hasType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return hasType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

func IsUnauthorizedError(err error) bool {
	return hasType(err, ErrorTypeUnauthorized)
}

func IsInsufficientInventoryError(err error) bool {
	return hasType(err, ErrorTypeInsufficientInventory)
}

func IsInvalidStateTransitionError(err error) bool {
	return hasType(err, ErrorTypeInvalidStateTransition)
}

func IsAlreadyDrawnError(err error) bool {
	return hasType(err, ErrorTypeAlreadyDrawn)
}

func IsNoPaidTicketsError(err error) bool {
	return hasType(err, ErrorTypeNoPaidTickets)
}

func IsRaffleNotOpenError(err error) bool {
	return hasType(err, ErrorTypeRaffleNotOpen)
}

func IsPersistenceError(err error) bool {
	return hasType(err, ErrorTypePersistence)
}

// RemainingFromError returns the remaining ticket count carried by an
// insufficient inventory error.
func RemainingFromError(err error) (int, bool) {
	appErr := GetAppError(err)
	if appErr == nil || appErr.Type != ErrorTypeInsufficientInventory {
		return 0, false
	}
	remaining, ok := appErr.Meta[MetaRemaining].(int)
	return remaining, ok
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// SQLite unique constraint
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return strings.Contains(errStr, "unique constraint")
}

// Persistence passes AppErrors through and wraps anything else as a
// persistence failure.
func Persistence(message string, err error) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	return NewPersistenceError(message, err)
}
