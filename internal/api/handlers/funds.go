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

// FundHandler handles fund-registry HTTP requests
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Funds lists all registered funds
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.GetFunds()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve funds", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, funds)
}

// Fund retrieves one fund by ID
func (h *FundHandler) Fund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(fundID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid fund ID", err.Error())
		return
	}

	fund, err := h.fundService.GetFund(fundID)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		respondError(w, http.StatusNotFound, "Fund not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve fund", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, fund)
}

// CreateFund registers a new fund
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFund(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), model.Fund{
		Name: req.Name,
		CNPJ: req.CNPJ,
		Type: req.Type,
	})
	switch {
	case errors.Is(err, apperrors.ErrInvalidCNPJ):
		respondError(w, http.StatusBadRequest, "Invalid CNPJ", err.Error())
		return
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		respondError(w, http.StatusConflict, "Fund already registered", "")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to create fund", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, fund)
}

// DeleteFund removes a fund from the registry
func (h *FundHandler) DeleteFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(fundID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid fund ID", err.Error())
		return
	}

	err := h.fundService.DeleteFund(r.Context(), fundID)
	switch {
	case errors.Is(err, apperrors.ErrFundNotFound):
		respondError(w, http.StatusNotFound, "Fund not found", "")
		return
	case errors.Is(err, apperrors.ErrFundInUse):
		respondError(w, http.StatusConflict, "Fund is held by a portfolio", "")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to delete fund", err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// QuotaCoverage reports how many quota rows the store holds for a fund
func (h *FundHandler) QuotaCoverage(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(fundID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid fund ID", err.Error())
		return
	}

	count, err := h.fundService.QuotaCoverage(fundID)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		respondError(w, http.StatusNotFound, "Fund not found", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to count quota values", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"quotaValues": count})
}
