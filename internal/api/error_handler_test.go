package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "name is required"), 422, `{"error":"name is required"}`},
		{"expired token", domain.ErrTokenExpired, 401, `{"error":"Unauthorized"}`},
		{"bad credentials", domain.ErrInvalidCredentials, 401, `{"error":"Invalid credentials"}`},
		{"duplicate email", domain.ErrUserExists, 409, `{"error":"user already exists"}`},
		{"invalid id", fmt.Errorf("%w: %q", domain.ErrInvalidID, "zzz"), 400, `{"error":"invalid id"}`},
		{"zero quantity", fmt.Errorf("item 0: %w", domain.ErrInvalidQuantity), 422, `{"error":"item 0: quantity must be at least 1"}`},
		{"unexpected", errors.New("socket closed"), 500, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != tt.wantBody {
				t.Fatalf("unexpected body %s", body)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("committed response must not be rewritten")
	}
}
