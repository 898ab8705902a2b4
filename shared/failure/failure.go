package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kinds classify domain failures beyond their HTTP code so callers can
// branch on the cause without parsing messages.
const (
	KindNoTablesAvailable    = "no_tables_available"
	KindTableAlreadyReserved = "table_already_reserved"
	KindNotFound             = "not_found"
	KindDuplicateID          = "duplicate_id"
	KindPersistence          = "persistence"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Forbidden returns a new Failure with code for forbidden requests.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
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

// NoTablesAvailable signals that no table is currently marked available.
func NoTablesAvailable() error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindNoTablesAvailable,
		Message: "no tables available to reserve",
	}
}

// TableAlreadyReserved signals an active reservation already holds the table for the date.
func TableAlreadyReserved(tableID int64, date string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindTableAlreadyReserved,
		Message: fmt.Sprintf("table %d is already reserved for %s", tableID, date),
	}
}

// NotFoundEntity returns a not-found failure naming the entity kind and id.
func NotFoundEntity(entity string, id int64) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %d not found", entity, id),
	}
}

// NotFound returns a generic not-found failure.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// DuplicateID signals the store rejected an id uniqueness constraint.
func DuplicateID(entity string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateID,
		Message: fmt.Sprintf("%s id already exists", entity),
	}
}

// Persistence wraps a store error surfaced at an operation boundary.
func Persistence(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    KindPersistence,
		Message: "persistence failure: " + err.Error(),
		cause:   err,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
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

// GetKind returns the failure kind of an error interface, if any.
func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}
