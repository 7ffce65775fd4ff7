// Package errors provides the closed error taxonomy for the DVI bridge.
// Every vendor-call failure is converted to a BridgeError at the point of
// failure and mapped to a JSON error response at the endpoint boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeInputInvalid — missing or malformed request field. HTTP 400.
	ErrCodeInputInvalid ErrorCode = "INPUT_INVALID"

	// ErrCodeAuthFailed — vendor login failure. Vendor text preserved.
	ErrCodeAuthFailed ErrorCode = "AUTH_FAILED"

	// ErrCodeVendorRequestFailed — any non-2xx vendor response. The message
	// carries the HTTP status and body.
	ErrCodeVendorRequestFailed ErrorCode = "VENDOR_REQUEST_FAILED"

	// ErrCodeLookupFailed — labor/item identifier could not be determined.
	ErrCodeLookupFailed ErrorCode = "LOOKUP_FAILED"

	// ErrCodeRowIDResolutionFailed — the RowID scrape found no identifier on
	// any candidate page. Carries the last encountered error.
	ErrCodeRowIDResolutionFailed ErrorCode = "ROWID_RESOLUTION_FAILED"
)

// BridgeError represents a structured application error.
type BridgeError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *BridgeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code to the response status the bridge returns.
func (e *BridgeError) HTTPStatus() int {
	if e.Code == ErrCodeInputInvalid {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ==========================
// Error Constructors
// ==========================

// NewInputError reports a missing or malformed request field.
func NewInputError(details string) *BridgeError {
	return &BridgeError{
		Code:      ErrCodeInputInvalid,
		Message:   "Invalid request input",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError reports a vendor login failure.
func NewAuthenticationError(details string) *BridgeError {
	return &BridgeError{
		Code:      ErrCodeAuthFailed,
		Message:   "DVI login failed",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewVendorRequestError reports a non-success vendor response. The HTTP
// status and response body are kept so the caller can see what the vendor
// actually said.
func NewVendorRequestError(operation string, status int, body string) *BridgeError {
	return &BridgeError{
		Code:      ErrCodeVendorRequestFailed,
		Message:   fmt.Sprintf("%s failed with status %d", operation, status),
		Details:   body,
		Timestamp: time.Now().UTC(),
	}
}

// NewLookupError reports that a labor or checklist-item identifier could
// not be determined for an RO.
func NewLookupError(details string) *BridgeError {
	return &BridgeError{
		Code:      ErrCodeLookupFailed,
		Message:   "Could not resolve checklist identifiers",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewResolutionError reports that no candidate page yielded a RowID.
func NewResolutionError(details string) *BridgeError {
	return &BridgeError{
		Code:      ErrCodeRowIDResolutionFailed,
		Message:   "Could not resolve RowID",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures we always have a BridgeError to respond with.
func Normalize(err error) *BridgeError {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) {
		return bridgeErr
	}
	return &BridgeError{
		Code:      ErrCodeVendorRequestFailed,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a BridgeError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) {
		return bridgeErr.Code == code
	}
	return false
}
