package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    int
	Message string
	Err     error
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

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, nil)
}

func NewAuthError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, nil)
}

func NewProviderError(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, message, err)
}

func NewStorageError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// Message returns the user-facing message of an error, hiding the wrapped
// cause of internal failures.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

func Code(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func IsValidation(err error) bool { return Code(err) == http.StatusBadRequest }
func IsConflict(err error) bool   { return Code(err) == http.StatusConflict }
func IsAuth(err error) bool       { return Code(err) == http.StatusUnauthorized }
func IsProvider(err error) bool   { return Code(err) == http.StatusBadGateway }
func IsStorage(err error) bool    { return Code(err) == http.StatusInternalServerError }
