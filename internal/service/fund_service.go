package service

import (
	"context"
	"fmt"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/cnpj"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
)

// FundService handles fund registry business logic. Registered funds form
// the tracked set the valuation importer filters archive rows against.
type FundService struct {
	fundRepo  *repository.FundRepository
	quotaRepo *repository.QuotaRepository
}

// NewFundService creates a new FundService.
func NewFundService(fundRepo *repository.FundRepository, quotaRepo *repository.QuotaRepository) *FundService {
	return &FundService{
		fundRepo:  fundRepo,
		quotaRepo: quotaRepo,
	}
}

// GetFunds retrieves all registered funds.
func (s *FundService) GetFunds() ([]model.Fund, error) {
	return s.fundRepo.GetFunds()
}

// GetFund retrieves a single fund by ID.
func (s *FundService) GetFund(fundID string) (model.Fund, error) {
	return s.fundRepo.GetFund(fundID)
}

// CreateFund registers a fund, storing its CNPJ in canonical punctuated
// form. Returns ErrInvalidCNPJ for malformed registry numbers.
func (s *FundService) CreateFund(ctx context.Context, f model.Fund) (model.Fund, error) {
	canonical, err := cnpj.Format(f.CNPJ)
	if err != nil {
		return model.Fund{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidCNPJ, err)
	}
	f.CNPJ = canonical

	return s.fundRepo.CreateFund(ctx, f)
}

// DeleteFund removes a fund from the registry. Funds still held by a
// portfolio cannot be removed.
func (s *FundService) DeleteFund(ctx context.Context, fundID string) error {
	return s.fundRepo.DeleteFund(ctx, fundID)
}

// QuotaCoverage reports how many quota rows the valuation store holds for
// a fund, for operational visibility into import coverage.
func (s *FundService) QuotaCoverage(fundID string) (int, error) {
	fund, err := s.fundRepo.GetFund(fundID)
	if err != nil {
		return 0, err
	}
	return s.quotaRepo.CountQuotas(fund.CNPJ)
}
