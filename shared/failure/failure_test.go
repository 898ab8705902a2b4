package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"donmario/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestDomainFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   error
		code    int
		kind    string
		message string
	}{
		{
			name:    "NoTablesAvailable",
			input:   failure.NoTablesAvailable(),
			code:    http.StatusUnprocessableEntity,
			kind:    failure.KindNoTablesAvailable,
			message: "no tables available to reserve",
		},
		{
			name:    "TableAlreadyReserved",
			input:   failure.TableAlreadyReserved(5, "2026-09-15"),
			code:    http.StatusConflict,
			kind:    failure.KindTableAlreadyReserved,
			message: "table 5 is already reserved for 2026-09-15",
		},
		{
			name:    "NotFoundEntity",
			input:   failure.NotFoundEntity("reservation", 999),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "reservation 999 not found",
		},
		{
			name:    "DuplicateID",
			input:   failure.DuplicateID("table"),
			code:    http.StatusConflict,
			kind:    failure.KindDuplicateID,
			message: "table id already exists",
		},
		{
			name:    "Persistence",
			input:   failure.Persistence(errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			kind:    failure.KindPersistence,
			message: "persistence failure: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if failure.GetCode(tt.input) != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, failure.GetCode(tt.input))
			}
			if failure.GetKind(tt.input) != tt.kind {
				t.Errorf("expected kind to be %s, got %s", tt.kind, failure.GetKind(tt.input))
			}
			if tt.input.Error() != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.input.Error())
			}
		})
	}
}

func TestPersistenceWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")

	err := failure.Persistence(cause)
	if !errors.Is(err, cause) {
		t.Error("expected the persistence failure to wrap its cause")
	}

	if failure.Persistence(nil) != nil {
		t.Error("expected nil for a nil cause")
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestUnauthorized(t *testing.T) {
	result := failure.Unauthorized("token expired")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Errorf("expected result to be *failure.Failure, got %T", result)
	} else {
		if f.Code != http.StatusUnauthorized {
			t.Errorf("expected code to be %d, got %d", http.StatusUnauthorized, f.Code)
		}
		if f.Message != "token expired" {
			t.Errorf("expected message to be 'token expired', got %s", f.Message)
		}
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    failure.BadRequestFromString("test"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if kind := failure.GetKind(errors.New("regular error")); kind != "" {
		t.Errorf("expected empty kind for a regular error, got %s", kind)
	}

	if kind := failure.GetKind(nil); kind != "" {
		t.Errorf("expected empty kind for nil, got %s", kind)
	}
}
