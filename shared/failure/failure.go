package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable classification of a user-facing failure.
// Clients correct their input on validation kinds and may retry on
// slot_unavailable with a different slot; internal errors carry no kind.
const (
	KindMalformedInput    = "malformed_input"
	KindInvalidDateRange  = "invalid_date_range"
	KindScheduleMismatch  = "schedule_mismatch"
	KindSlotUnavailable   = "slot_unavailable"
	KindReferenceNotFound = "reference_not_found"
	KindResourceNotFound  = "resource_not_found"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindMalformedInput,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindMalformedInput,
		Message: msg,
	}
}

// InvalidDateRange flags a booking whose dates are out of order or in the past.
func InvalidDateRange(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidDateRange,
		Message: msg,
	}
}

// ScheduleMismatch flags an experience booking whose instant does not match
// the experience's configured start time.
func ScheduleMismatch(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindScheduleMismatch,
		Message: msg,
	}
}

// SlotUnavailable flags a conflict with an existing booking. The client may
// retry with a different slot; the engine never retries on its own.
func SlotUnavailable(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindSlotUnavailable,
		Message: msg,
	}
}

// ReferenceNotFound flags a tag id that does not resolve at creation time.
// The whole creation is rolled back before this is surfaced.
func ReferenceNotFound(id string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindReferenceNotFound,
		Message: fmt.Sprintf("referenced tag not found: %s", id),
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindResourceNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of an error interface, or empty for
// internal faults.
func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}
