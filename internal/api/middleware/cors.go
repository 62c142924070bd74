package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the frontend origins. X-API-Key is
// allowed through so the admin UI can reach the job-trigger endpoints.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"X-API-Key",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
