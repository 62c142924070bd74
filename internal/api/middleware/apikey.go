package middleware

import (
	"log"
	"net/http"

	"github.com/gcoelho/carteira-manager-backend/internal/api/response"
)

// APIKeyVerifier checks a presented internal API key. The credentials
// service satisfies it.
type APIKeyVerifier interface {
	VerifyInternalAPIKey(provided string) (bool, error)
}

// APIKey guards internal endpoints (job triggers) with the X-API-Key
// header. Requests without a key get 401, requests with a wrong key 403.
func APIKey(verifier APIKeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
				return
			}

			ok, err := verifier.VerifyInternalAPIKey(provided)
			if err != nil {
				log.Printf("api key verification failed: %v", err)
				response.RespondError(w, http.StatusInternalServerError, "failed to verify API key", nil)
				return
			}
			if !ok {
				response.RespondError(w, http.StatusForbidden, "forbidden", "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
