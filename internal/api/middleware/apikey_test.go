package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gcoelho/carteira-manager-backend/internal/api/middleware"
)

type stubVerifier struct {
	accept string
	err    error
}

func (v *stubVerifier) VerifyInternalAPIKey(provided string) (bool, error) {
	if v.err != nil {
		return false, v.err
	}
	return provided == v.accept, nil
}

func callGuarded(t *testing.T, verifier middleware.APIKeyVerifier, key string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	handler := middleware.APIKey(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/import", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reached
}

// TestAPIKey tests the guard on the internal job-trigger endpoints:
// missing key, wrong key, valid key, verifier failure.
func TestAPIKey(t *testing.T) {
	t.Run("missing key gets 401", func(t *testing.T) {
		rec, reached := callGuarded(t, &stubVerifier{accept: "segredo"}, "")

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
		if reached {
			t.Error("Handler must not run without a key")
		}
	})

	t.Run("wrong key gets 403", func(t *testing.T) {
		rec, reached := callGuarded(t, &stubVerifier{accept: "segredo"}, "errado")

		if rec.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", rec.Code)
		}
		if reached {
			t.Error("Handler must not run with a wrong key")
		}
	})

	t.Run("valid key passes through", func(t *testing.T) {
		rec, reached := callGuarded(t, &stubVerifier{accept: "segredo"}, "segredo")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		if !reached {
			t.Error("Handler should run with a valid key")
		}
	})

	t.Run("verifier failure gets 500", func(t *testing.T) {
		rec, reached := callGuarded(t, &stubVerifier{err: errors.New("db down")}, "segredo")

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", rec.Code)
		}
		if reached {
			t.Error("Handler must not run when verification fails")
		}
	})
}
