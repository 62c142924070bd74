package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gcoelho/carteira-manager-backend/internal/api/request"
	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/service"
	"github.com/gcoelho/carteira-manager-backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios lists all portfolios
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve portfolios", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, portfolios)
}

// Portfolio retrieves one portfolio by ID
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid portfolio ID", err.Error())
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		respondError(w, http.StatusNotFound, "Portfolio not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve portfolio", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio creates a new portfolio
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), model.Portfolio{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create portfolio", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio updates a portfolio's mutable fields
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid portfolio ID", err.Error())
		return
	}

	var req request.UpdatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		respondError(w, http.StatusNotFound, "Portfolio not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve portfolio", err.Error())
		return
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}
	if req.IsArchived != nil {
		portfolio.IsArchived = *req.IsArchived
	}

	if err := h.portfolioService.UpdatePortfolio(r.Context(), portfolio); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update portfolio", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio removes a portfolio
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid portfolio ID", err.Error())
		return
	}

	err := h.portfolioService.DeletePortfolio(r.Context(), portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		respondError(w, http.StatusNotFound, "Portfolio not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete portfolio", err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Holdings lists a portfolio's fund positions
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid portfolio ID", err.Error())
		return
	}

	holdings, err := h.portfolioService.GetHoldings(portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		respondError(w, http.StatusNotFound, "Portfolio not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve holdings", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// AddHolding registers a fund position inside a portfolio
func (h *PortfolioHandler) AddHolding(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid portfolio ID", err.Error())
		return
	}

	var req request.CreateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateHolding(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	holding, err := h.portfolioService.AddHolding(r.Context(), model.Holding{
		PortfolioID:   portfolioID,
		FundID:        req.FundID,
		TotalQuotas:   req.TotalQuotas,
		TotalInvested: req.TotalInvested,
	})
	switch {
	case errors.Is(err, apperrors.ErrPortfolioNotFound):
		respondError(w, http.StatusNotFound, "Portfolio not found", "")
		return
	case errors.Is(err, apperrors.ErrFundNotFound):
		respondError(w, http.StatusNotFound, "Fund not found", "")
		return
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		respondError(w, http.StatusConflict, "Portfolio already holds this fund", "")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to add holding", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, holding)
}

// UpdateHolding replaces a holding's quota and invested totals
func (h *PortfolioHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(holdingID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid holding ID", err.Error())
		return
	}

	var req request.UpdateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.TotalQuotas < 0 || req.TotalInvested < 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", "totals must not be negative")
		return
	}

	err := h.portfolioService.UpdateHolding(r.Context(), model.Holding{
		ID:            holdingID,
		TotalQuotas:   req.TotalQuotas,
		TotalInvested: req.TotalInvested,
	})
	if errors.Is(err, apperrors.ErrHoldingNotFound) {
		respondError(w, http.StatusNotFound, "Holding not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update holding", err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// RemoveHolding deletes a holding
func (h *PortfolioHandler) RemoveHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(holdingID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid holding ID", err.Error())
		return
	}

	err := h.portfolioService.RemoveHolding(r.Context(), holdingID)
	if errors.Is(err, apperrors.ErrHoldingNotFound) {
		respondError(w, http.StatusNotFound, "Holding not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to remove holding", err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
