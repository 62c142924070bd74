package service

import (
	"context"
	"fmt"

	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
)

// PortfolioService handles portfolio business logic and holding management.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	holdingRepo   *repository.HoldingRepository
	fundRepo      *repository.FundRepository
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	holdingRepo *repository.HoldingRepository,
	fundRepo *repository.FundRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		holdingRepo:   holdingRepo,
		fundRepo:      fundRepo,
	}
}

// GetAllPortfolios retrieves all portfolios, including archived ones.
func (s *PortfolioService) GetAllPortfolios() ([]model.Portfolio, error) {
	return s.portfolioRepo.GetAllPortfolios()
}

// GetPortfolio retrieves a single portfolio by ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolio(portfolioID)
}

// CreatePortfolio creates a new portfolio.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, p model.Portfolio) (model.Portfolio, error) {
	return s.portfolioRepo.CreatePortfolio(ctx, p)
}

// UpdatePortfolio updates a portfolio's mutable fields.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, p model.Portfolio) error {
	return s.portfolioRepo.UpdatePortfolio(ctx, p)
}

// DeletePortfolio removes a portfolio and its holdings.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(ctx, portfolioID)
}

// GetHoldings retrieves a portfolio's holdings with fund metadata.
func (s *PortfolioService) GetHoldings(portfolioID string) ([]model.HoldingPosition, error) {
	if _, err := s.portfolioRepo.GetPortfolio(portfolioID); err != nil {
		return nil, err
	}
	return s.holdingRepo.GetHoldingsByPortfolio(portfolioID)
}

// AddHolding registers a fund position inside a portfolio. Both the
// portfolio and the fund must already exist.
func (s *PortfolioService) AddHolding(ctx context.Context, h model.Holding) (model.Holding, error) {
	if _, err := s.portfolioRepo.GetPortfolio(h.PortfolioID); err != nil {
		return model.Holding{}, err
	}
	if _, err := s.fundRepo.GetFund(h.FundID); err != nil {
		return model.Holding{}, err
	}
	created, err := s.holdingRepo.CreateHolding(ctx, h)
	if err != nil {
		return model.Holding{}, fmt.Errorf("adding holding to portfolio %s: %w", h.PortfolioID, err)
	}
	return created, nil
}

// UpdateHolding updates a holding's position.
func (s *PortfolioService) UpdateHolding(ctx context.Context, h model.Holding) error {
	return s.holdingRepo.UpdateHolding(ctx, h)
}

// RemoveHolding deletes a holding from its portfolio.
func (s *PortfolioService) RemoveHolding(ctx context.Context, holdingID string) error {
	return s.holdingRepo.DeleteHolding(ctx, holdingID)
}
