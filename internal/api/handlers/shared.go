package handlers

import (
	"net/http"

	"github.com/gcoelho/carteira-manager-backend/internal/api/response"
)

// Thin wrappers over the response package so handler bodies stay short
// and every endpoint emits the same error shape.

func respondJSON(w http.ResponseWriter, status int, data any) {
	response.RespondJSON(w, status, data)
}

func respondError(w http.ResponseWriter, status int, message, detail string) {
	var details any
	if detail != "" {
		details = detail
	}
	response.RespondError(w, status, message, details)
}
