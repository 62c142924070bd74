package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
)

// quotaFallbackDays is how many calendar days findQuota walks backward
// from the anchor date before giving up. Covers weekends and holidays
// when no quota is published.
const quotaFallbackDays = 5

// PerformanceService derives monthly, year-to-date and trailing-12-month
// return percentages plus a monetary earnings figure for every holding
// with a positive quota balance, from the quota_value store.
type PerformanceService struct {
	holdingRepo *repository.HoldingRepository
	quotaRepo   *repository.QuotaRepository
	perfRepo    *repository.PerformanceRepository
	logger      Logger
}

// NewPerformanceService creates a new PerformanceService.
func NewPerformanceService(
	holdingRepo *repository.HoldingRepository,
	quotaRepo *repository.QuotaRepository,
	perfRepo *repository.PerformanceRepository,
	logger Logger,
) *PerformanceService {
	return &PerformanceService{
		holdingRepo: holdingRepo,
		quotaRepo:   quotaRepo,
		perfRepo:    perfRepo,
		logger:      logger,
	}
}

// Run calculates performance for the month containing targetDate (zero
// value means yesterday) and upserts one record per (portfolio, holding,
// period). A holding whose anchor quotas are unavailable is skipped
// without a record; a holding that fails unexpectedly is counted and
// logged without aborting the rest of the batch.
func (s *PerformanceService) Run(ctx context.Context, targetDate time.Time) (model.CalculationSummary, error) {
	if targetDate.IsZero() {
		targetDate = time.Now().UTC().AddDate(0, 0, -1)
	}
	targetDate = time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, time.UTC)

	summary := model.CalculationSummary{StartedAt: time.Now().UTC()}

	holdings, err := s.holdingRepo.GetActiveHoldings()
	if err != nil {
		return summary, fmt.Errorf("listing active holdings: %w", err)
	}

	monthStart := time.Date(targetDate.Year(), targetDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	for _, holding := range holdings {
		summary.HoldingsProcessed++

		written, err := s.calculateHolding(ctx, holding, targetDate, monthStart, monthEnd)
		if err != nil {
			summary.Errors++
			s.logger.Printf("performance: holding %s (fund %s): %v", holding.ID, holding.FundCNPJ, err)
			continue
		}
		if written {
			summary.RecordsWritten++
		} else {
			summary.HoldingsSkipped++
		}
	}

	summary.FinishedAt = time.Now().UTC()
	summary.Duration = summary.FinishedAt.Sub(summary.StartedAt)

	s.logger.Printf("performance: %d holdings, %d records written, %d skipped, %d errors in %s",
		summary.HoldingsProcessed, summary.RecordsWritten, summary.HoldingsSkipped,
		summary.Errors, summary.Duration)

	return summary, nil
}

// calculateHolding computes and upserts one holding's record for the
// period ending at monthEnd. Returns false with no error when the month's
// anchor quotas are unavailable: insufficient data, not a failure.
func (s *PerformanceService) calculateHolding(
	ctx context.Context,
	holding model.HoldingPosition,
	targetDate, monthStart, monthEnd time.Time,
) (bool, error) {
	quotaStart, okStart, err := s.findQuota(holding.FundCNPJ, monthStart)
	if err != nil {
		return false, err
	}
	quotaEnd, okEnd, err := s.findQuota(holding.FundCNPJ, monthEnd)
	if err != nil {
		return false, err
	}
	if !okStart || !okEnd {
		return false, nil
	}

	monthly := percentChange(quotaStart, quotaEnd)

	record := model.PerformanceRecord{
		PortfolioID:      holding.PortfolioID,
		HoldingID:        holding.ID,
		Period:           monthEnd,
		MonthlyReturnPct: monthly,
		Earnings:         monthly / 100 * holding.TotalInvested,
	}

	yearStart := time.Date(targetDate.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if anchor, ok, err := s.findQuota(holding.FundCNPJ, yearStart); err != nil {
		return false, err
	} else if ok {
		yearly := percentChange(anchor, quotaEnd)
		record.YearlyReturnPct = &yearly
	}

	if anchor, ok, err := s.findQuota(holding.FundCNPJ, targetDate.AddDate(0, -12, 0)); err != nil {
		return false, err
	} else if ok {
		trailing := percentChange(anchor, quotaEnd)
		record.Trailing12mReturnPct = &trailing
	}

	if err := s.perfRepo.Upsert(ctx, record); err != nil {
		return false, err
	}

	return true, nil
}

// findQuota looks up a fund's quota on the given date, walking backward up
// to quotaFallbackDays calendar days when the exact date has no published
// value. The second return is false when no value exists in the window.
func (s *PerformanceService) findQuota(fundCNPJ string, on time.Time) (float64, bool, error) {
	for back := 0; back <= quotaFallbackDays; back++ {
		value, err := s.quotaRepo.GetQuotaOnDate(fundCNPJ, on.AddDate(0, 0, -back))
		if err == nil {
			return value, true, nil
		}
		if !errors.Is(err, apperrors.ErrQuotaNotFound) {
			return 0, false, err
		}
	}
	return 0, false, nil
}

// percentChange returns the percentage change from start to end, guarding
// against a zero start (imported quotas are always positive, but a zero
// must not crash the batch).
func percentChange(start, end float64) float64 {
	if start == 0 {
		return 0
	}
	return (end - start) / start * 100
}
