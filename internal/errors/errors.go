package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes. Each code maps to exactly one HTTP status in ToHTTPStatus.
const (
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeDependencyFailure = "DEPENDENCY_FAILURE"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches two domain errors by code so wrapped copies of a predefined
// error still satisfy errors.Is against the original.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && (t.Message == "" || e.Message == t.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// InvalidArgument builds a 400-class error with a caller-facing message.
func InvalidArgument(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound builds a 404-class error naming the missing resource.
func NotFound(resource string) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found")
}

// Conflict builds a 409-class error with a caller-facing message.
func Conflict(format string, args ...any) *DomainError {
	return NewDomainError(CodeConflict, fmt.Sprintf(format, args...))
}

// Predefined domain errors
var (
	// Authentication errors
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "unauthorized")
	ErrInvalidCredentials  = NewDomainError(CodeUnauthorized, "invalid email or password")
	ErrInvalidToken        = NewDomainError(CodeUnauthorized, "invalid or expired token")
	ErrInvalidRefreshToken = NewDomainError(CodeUnauthorized, "invalid refresh token")
	ErrForbidden           = NewDomainError(CodeForbidden, "access forbidden")

	// Resource errors
	ErrUserNotFound        = NotFound("user")
	ErrRoleNotFound        = NotFound("role")
	ErrCompanyNotFound     = NotFound("company")
	ErrJobNotFound         = NotFound("job")
	ErrSkillNotFound       = NotFound("skill")
	ErrCategoryNotFound    = NotFound("category")
	ErrApplicationNotFound = NotFound("application")
	ErrBlogNotFound        = NotFound("blog")

	// Conflict errors
	ErrEmailExists          = Conflict("email already exists")
	ErrDuplicateApplication = Conflict("you have already applied to this job with this CV")

	// Validation errors
	ErrInvalidInput   = NewDomainError(CodeInvalidArgument, "invalid input")
	ErrInvalidID      = NewDomainError(CodeInvalidArgument, "invalid id")
	ErrProtectedAdmin = NewDomainError(CodeInvalidArgument, "the admin account cannot be deleted")
	ErrInvalidStatus  = NewDomainError(CodeInvalidArgument, "invalid application status")
	ErrProtectedRole  = NewDomainError(CodeInvalidArgument, "built-in roles cannot be renamed or deleted")

	// System errors
	ErrInternal          = NewDomainError(CodeInternal, "internal server error")
	ErrDependencyFailure = NewDomainError(CodeDependencyFailure, "storage is unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// HasCode reports whether err carries a domain error with the given code.
func HasCode(err error, code string) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Code == code
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeDependencyFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
