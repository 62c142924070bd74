package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
	"github.com/gcoelho/carteira-manager-backend/internal/testutil"
)

// TestPerformanceRepository_Upsert tests write semantics on the
// (portfolio, holding, period) natural key.
func TestPerformanceRepository_Upsert(t *testing.T) {
	t.Run("overwrites existing period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPerformanceRepository(db)

		portfolio := testutil.CreatePortfolio(t, db, "Carteira")
		fund := testutil.CreateFund(t, db, testutil.MakeCNPJ())
		holding := testutil.CreateHolding(t, db, portfolio.ID, fund.ID, 100, 10000)

		period := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		rec := model.PerformanceRecord{
			PortfolioID:      portfolio.ID,
			HoldingID:        holding.ID,
			Period:           period,
			MonthlyReturnPct: 1.13,
			Earnings:         113,
		}

		if err := repo.Upsert(context.Background(), rec); err != nil {
			t.Fatalf("First upsert failed: %v", err)
		}

		rec.MonthlyReturnPct = 2.00
		rec.Earnings = 200
		if err := repo.Upsert(context.Background(), rec); err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}

		testutil.AssertRowCount(t, db, "performance_history", 1)

		stored, err := repo.GetByHoldingAndPeriod(portfolio.ID, holding.ID, "2024-03-31")
		if err != nil {
			t.Fatalf("GetByHoldingAndPeriod() returned unexpected error: %v", err)
		}
		if stored.MonthlyReturnPct != 2.00 {
			t.Errorf("Expected overwritten monthly return 2.00, got %v", stored.MonthlyReturnPct)
		}
	})

	t.Run("preserves nil optional returns", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPerformanceRepository(db)

		portfolio := testutil.CreatePortfolio(t, db, "Carteira")
		fund := testutil.CreateFund(t, db, testutil.MakeCNPJ())
		holding := testutil.CreateHolding(t, db, portfolio.ID, fund.ID, 100, 10000)

		yearly := 5.5
		rec := model.PerformanceRecord{
			PortfolioID:      portfolio.ID,
			HoldingID:        holding.ID,
			Period:           time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			MonthlyReturnPct: 1.13,
			YearlyReturnPct:  &yearly,
			Earnings:         113,
		}

		if err := repo.Upsert(context.Background(), rec); err != nil {
			t.Fatalf("Upsert() returned unexpected error: %v", err)
		}

		stored, err := repo.GetByHoldingAndPeriod(portfolio.ID, holding.ID, "2024-03-31")
		if err != nil {
			t.Fatalf("GetByHoldingAndPeriod() returned unexpected error: %v", err)
		}
		if stored.YearlyReturnPct == nil || *stored.YearlyReturnPct != 5.5 {
			t.Errorf("Expected yearly return 5.5, got %v", stored.YearlyReturnPct)
		}
		if stored.Trailing12mReturnPct != nil {
			t.Errorf("Expected nil trailing return, got %v", *stored.Trailing12mReturnPct)
		}
	})
}

// TestPerformanceRepository_GetByPortfolio tests the history listing,
// including the year filter the reporting endpoint exposes.
func TestPerformanceRepository_GetByPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPerformanceRepository(db)

	portfolio := testutil.CreatePortfolio(t, db, "Carteira")
	fund := testutil.CreateFund(t, db, testutil.MakeCNPJ())
	holding := testutil.CreateHolding(t, db, portfolio.ID, fund.ID, 100, 10000)

	for _, period := range []time.Time{
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	} {
		rec := model.PerformanceRecord{
			PortfolioID:      portfolio.ID,
			HoldingID:        holding.ID,
			Period:           period,
			MonthlyReturnPct: 1.0,
			Earnings:         100,
		}
		if err := repo.Upsert(context.Background(), rec); err != nil {
			t.Fatalf("Upsert() returned unexpected error: %v", err)
		}
	}

	t.Run("returns all periods newest first", func(t *testing.T) {
		records, err := repo.GetByPortfolio(portfolio.ID, 0)
		if err != nil {
			t.Fatalf("GetByPortfolio() returned unexpected error: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(records))
		}
		if !records[0].Period.After(records[1].Period) {
			t.Errorf("Expected newest period first, got %v before %v", records[0].Period, records[1].Period)
		}
	})

	t.Run("filters by year", func(t *testing.T) {
		records, err := repo.GetByPortfolio(portfolio.ID, 2024)
		if err != nil {
			t.Fatalf("GetByPortfolio() returned unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("Expected 2 records for 2024, got %d", len(records))
		}
	})

	t.Run("unknown portfolio yields empty history", func(t *testing.T) {
		records, err := repo.GetByPortfolio(testutil.MakeID(), 0)
		if err != nil {
			t.Fatalf("GetByPortfolio() returned unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("Expected empty history, got %d records", len(records))
		}
	})
}

func TestPerformanceRepository_GetByHoldingAndPeriod_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPerformanceRepository(db)

	_, err := repo.GetByHoldingAndPeriod(testutil.MakeID(), testutil.MakeID(), "2024-03-31")

	if !errors.Is(err, apperrors.ErrPerformanceNotFound) {
		t.Errorf("Expected ErrPerformanceNotFound, got: %v", err)
	}
}
