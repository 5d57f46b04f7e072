package shared

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewAPIError(t *testing.T) {
	err := NewAPIError("assistant_not_found", "assistant not found")
	if err.Code != "assistant_not_found" {
		t.Errorf("expected code 'assistant_not_found', got '%s'", err.Code)
	}
	if err.Message != "assistant not found" {
		t.Errorf("expected message 'assistant not found', got '%s'", err.Message)
	}
	if err.Details != nil {
		t.Errorf("expected nil details, got %v", err.Details)
	}
}

func TestAPIError_WithDetails(t *testing.T) {
	err := NewAPIError("missing_fields", "name and model_type are required")
	err = err.WithDetails(map[string]string{"field": "model_type"})

	if err.Details == nil {
		t.Fatal("expected details to be set")
	}
	d, ok := err.Details.(map[string]string)
	if !ok {
		t.Fatal("expected details to be map[string]string")
	}
	if d["field"] != "model_type" {
		t.Errorf("expected field 'model_type', got '%s'", d["field"])
	}
}

func TestAPIError_ToHTTP(t *testing.T) {
	httpErr := NewAPIError("invalid_date", "date must be YYYY-MM-DD").ToHTTP(http.StatusBadRequest)

	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, httpErr.Code)
	}
	msg, ok := httpErr.Message.(*APIError)
	if !ok {
		t.Fatal("expected message to be *APIError")
	}
	if msg.Code != "invalid_date" {
		t.Errorf("expected code 'invalid_date', got '%s'", msg.Code)
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *echo.HTTPError
		wantStatus int
		wantCode   string
	}{
		{"bad request", BadRequest("invalid_id", "id must be numeric"), http.StatusBadRequest, "invalid_id"},
		{"unauthorized", Unauthorized("session_revoked", "session is no longer active"), http.StatusUnauthorized, "session_revoked"},
		{"forbidden", Forbidden("admin_required", "admin access required"), http.StatusForbidden, "admin_required"},
		{"not found", NotFound("assistant_not_found", "assistant not found"), http.StatusNotFound, "assistant_not_found"},
		{"conflict", Conflict("email_taken", "an account with this email already exists"), http.StatusConflict, "email_taken"},
		{"internal", InternalError("upsert_failed", "failed to save metric"), http.StatusInternalServerError, "upsert_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.Code)
			}
			apiErr, ok := tt.err.Message.(*APIError)
			if !ok {
				t.Fatal("expected message to be *APIError")
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("expected code '%s', got '%s'", tt.wantCode, apiErr.Code)
			}
		})
	}
}
