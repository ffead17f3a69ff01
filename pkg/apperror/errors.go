package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies terminal errors so callers can react without string
// matching. Every kind in the checkout workflow is recoverable.
type Kind string

const (
	KindStockLimit         Kind = "stock_limit_exceeded"
	KindInvalidInput       Kind = "invalid_input"
	KindSubmissionRejected Kind = "submission_rejected"
	KindNetworkFailure     Kind = "network_failure"
	KindPrintFailure       Kind = "print_failure"
	KindConflict           Kind = "conflict"
	KindNotFound           Kind = "not_found"
	KindInternal           Kind = "internal"
)

// AppError represents an application error with an HTTP status code and a
// machine-readable kind.
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidInput, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrCartEmpty      = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidInput, Message: "Cart is empty"}
	ErrCartFrozen     = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Cart is locked while a checkout is in progress"}
	ErrNetworkFailure = &AppError{Code: http.StatusBadGateway, Kind: KindNetworkFailure, Message: "Could not complete sale"}
	ErrNothingToUndo  = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidInput, Message: "No recently removed item to restore"}
)

// NewAppError creates a new application error.
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewStockLimitError reports a mutation that would exceed available stock.
func NewStockLimitError(name string, available int) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindStockLimit,
		Message: fmt.Sprintf("Only %d units of %s available in stock", available, name),
	}
}

// NewInvalidInputError reports rejected numeric input (price or quantity).
func NewInvalidInputError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidInput,
		Message: message,
	}
}

// NewSubmissionRejectedError wraps a backend validation failure so its message
// reaches the user verbatim.
func NewSubmissionRejectedError(message string) *AppError {
	if message == "" {
		message = "Sale was rejected by the backend"
	}
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindSubmissionRejected,
		Message: message,
	}
}

// NewPrintError reports a receipt delivery failure. The sale itself is never
// rolled back for one of these.
func NewPrintError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPrintFailure,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom resource name.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
