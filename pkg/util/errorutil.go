package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(message string, details map[string]any) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewAlreadyExists(message string, details map[string]any) error {
	return NewDomainError("ALREADY_EXISTS", message, http.StatusConflict, details)
}

func NewInvalidStatus(message string, details map[string]any) error {
	return NewDomainError("INVALID_STATUS", message, http.StatusBadRequest, details)
}

func NewInvalidTransaction(message string, details map[string]any) error {
	return NewDomainError("INVALID_TRANSACTION", message, http.StatusBadRequest, details)
}

func NewNotOnSale(message string) error {
	return NewDomainError("NOT_ON_SALE", message, http.StatusConflict, nil)
}

func NewSelfPurchase(message string) error {
	return NewDomainError("SELF_PURCHASE", message, http.StatusConflict, nil)
}

func NewInsufficientFunds(message string, details map[string]any) error {
	return NewDomainError("INSUFFICIENT_FUNDS", message, http.StatusPaymentRequired, details)
}

// NewStoreUnavailable reports a ledger read/write failure distinctly from
// record absence.
func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "ledger store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
