package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service layer.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeConflict       = "CONFLICT"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeForbidden      = "FORBIDDEN"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response. Redirect, when
// set, tells the rendering layer where the original flow would send the user
// (e.g. duplicate registration redirects to the login form).
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Details  string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code     string
	Message  string
	Redirect string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewConflictError reports a uniqueness violation. redirect may be empty.
func NewConflictError(message, redirect string) *AppError {
	return &AppError{
		Code:     CodeConflict,
		Message:  message,
		Redirect: redirect,
	}
}

// NewAuthenticationError reports missing or bad credentials.
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Code:    CodeAuthentication,
		Message: message,
	}
}

// NewForbiddenError reports an authenticated identity attempting an
// operation it is not privileged for.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error:    appErr.Message,
			Code:     appErr.Code,
			Redirect: appErr.Redirect,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
