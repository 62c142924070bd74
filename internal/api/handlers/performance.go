package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gcoelho/carteira-manager-backend/internal/repository"
	"github.com/gcoelho/carteira-manager-backend/internal/validation"
)

// PerformanceHandler serves the computed performance history for the
// frontend charts. It only reads; the calculator job writes.
type PerformanceHandler struct {
	perfRepo *repository.PerformanceRepository
}

// NewPerformanceHandler creates a new PerformanceHandler
func NewPerformanceHandler(perfRepo *repository.PerformanceRepository) *PerformanceHandler {
	return &PerformanceHandler{
		perfRepo: perfRepo,
	}
}

// History lists a portfolio's performance records, optionally filtered by
// the ?year= query parameter.
func (h *PerformanceHandler) History(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid portfolio ID", err.Error())
		return
	}

	year := 0
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil || parsed < 1900 {
			respondError(w, http.StatusBadRequest, "Invalid year", "year must be a four-digit number")
			return
		}
		year = parsed
	}

	records, err := h.perfRepo.GetByPortfolio(portfolioID, year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve performance history", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, records)
}
