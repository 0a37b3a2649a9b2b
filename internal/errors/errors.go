package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindAccessDenied
	KindNotFound
)

// AppError is a domain error carrying a client-safe message.
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	// ErrAccessDenied is returned when the caller may not act on the target, or presents no valid token.
	ErrAccessDenied = &AppError{Kind: KindAccessDenied, Message: "Access denied"}
	// ErrInvalidCredentials is returned for any failed login, whatever the cause.
	ErrInvalidCredentials = &AppError{Kind: KindAuth, Message: "Invalid credentials"}
	// ErrEmailExists is returned when an email is already registered to another user.
	ErrEmailExists = &AppError{Kind: KindConflict, Message: "Email already exists"}
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = &AppError{Kind: KindNotFound, Message: "User not found"}
	// ErrAccountNotFound is returned when an account is absent or owned by someone else.
	ErrAccountNotFound = &AppError{Kind: KindNotFound, Message: "Account not found or access denied"}
	// ErrCategoryNotFound is returned when a category is absent or owned by someone else.
	ErrCategoryNotFound = &AppError{Kind: KindNotFound, Message: "Category not found or access denied"}
	// ErrParentCategoryNotFound is returned when a parentId does not resolve under the owner.
	ErrParentCategoryNotFound = &AppError{Kind: KindNotFound, Message: "Parent category not found or access denied"}
	// ErrTransactionNotFound is returned when a transaction is absent or owned by someone else.
	ErrTransactionNotFound = &AppError{Kind: KindNotFound, Message: "Transaction not found or access denied"}
)

// NewValidationError creates an error for missing or malformed input.
func NewValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

// KindOf reports the kind of err, KindInternal for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors never leak their message.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}

	switch appErr.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, "VALIDATION_ERROR")
	case KindConflict:
		return NewHTTPError(http.StatusConflict, appErr.Message, "CONFLICT")
	case KindAuth:
		return NewHTTPError(http.StatusUnauthorized, appErr.Message, "INVALID_CREDENTIALS")
	case KindAccessDenied:
		return NewHTTPError(http.StatusForbidden, appErr.Message, "ACCESS_DENIED")
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, appErr.Message, "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
