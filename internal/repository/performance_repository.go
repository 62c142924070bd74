package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
)

// PerformanceRepository provides data access methods for the
// performance_history table, keyed by (portfolio, holding, period).
type PerformanceRepository struct {
	db *sql.DB
}

// NewPerformanceRepository creates a new PerformanceRepository with the provided database connection.
func NewPerformanceRepository(db *sql.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// Upsert writes one performance record using the natural key
// (portfolio_id, portfolio_fund_id, period) for conflict resolution.
// Re-running a calculation for the same period overwrites in place.
func (r *PerformanceRepository) Upsert(ctx context.Context, rec model.PerformanceRecord) error {
	query := `
		INSERT INTO performance_history
			(id, portfolio_id, portfolio_fund_id, period,
			 monthly_return_pct, yearly_return_pct, trailing_12m_return_pct, earnings,
			 calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(portfolio_id, portfolio_fund_id, period) DO UPDATE SET
			monthly_return_pct = excluded.monthly_return_pct,
			yearly_return_pct = excluded.yearly_return_pct,
			trailing_12m_return_pct = excluded.trailing_12m_return_pct,
			earnings = excluded.earnings,
			calculated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		rec.PortfolioID,
		rec.HoldingID,
		rec.Period.Format("2006-01-02"),
		rec.MonthlyReturnPct,
		nullableFloat(rec.YearlyReturnPct),
		nullableFloat(rec.Trailing12mReturnPct),
		rec.Earnings,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert performance record: %w", err)
	}

	return nil
}

// GetByPortfolio retrieves a portfolio's performance history, optionally
// restricted to one year (0 means all years), newest period first.
func (r *PerformanceRepository) GetByPortfolio(portfolioID string, year int) ([]model.PerformanceRecord, error) {
	query := `
		SELECT id, portfolio_id, portfolio_fund_id, period,
		       monthly_return_pct, yearly_return_pct, trailing_12m_return_pct, earnings
		FROM performance_history
		WHERE portfolio_id = ?
	`
	args := []any{portfolioID}

	if year > 0 {
		query += ` AND period >= ? AND period <= ?`
		args = append(args, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	}

	query += ` ORDER BY period DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance history: %w", err)
	}
	defer rows.Close()

	records := []model.PerformanceRecord{}

	for rows.Next() {
		var rec model.PerformanceRecord
		var periodStr string
		var yearly, trailing sql.NullFloat64

		err := rows.Scan(
			&rec.ID,
			&rec.PortfolioID,
			&rec.HoldingID,
			&periodStr,
			&rec.MonthlyReturnPct,
			&yearly,
			&trailing,
			&rec.Earnings,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance record: %w", err)
		}

		rec.Period, err = ParseTime(periodStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse period: %w", err)
		}
		if yearly.Valid {
			rec.YearlyReturnPct = &yearly.Float64
		}
		if trailing.Valid {
			rec.Trailing12mReturnPct = &trailing.Float64
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating performance history: %w", err)
	}

	return records, nil
}

// GetByHoldingAndPeriod retrieves one performance record by its natural
// key (portfolio, holding, period in YYYY-MM-DD form). Returns
// apperrors.ErrPerformanceNotFound when no record exists for the key.
func (r *PerformanceRepository) GetByHoldingAndPeriod(portfolioID, holdingID string, period string) (model.PerformanceRecord, error) {
	query := `
		SELECT id, portfolio_id, portfolio_fund_id, period,
		       monthly_return_pct, yearly_return_pct, trailing_12m_return_pct, earnings
		FROM performance_history
		WHERE portfolio_id = ? AND portfolio_fund_id = ? AND period = ?
	`

	var rec model.PerformanceRecord
	var periodStr string
	var yearly, trailing sql.NullFloat64

	err := r.db.QueryRow(query, portfolioID, holdingID, period).Scan(
		&rec.ID,
		&rec.PortfolioID,
		&rec.HoldingID,
		&periodStr,
		&rec.MonthlyReturnPct,
		&yearly,
		&trailing,
		&rec.Earnings,
	)
	if err == sql.ErrNoRows {
		return model.PerformanceRecord{}, apperrors.ErrPerformanceNotFound
	}
	if err != nil {
		return model.PerformanceRecord{}, fmt.Errorf("failed to query performance record: %w", err)
	}

	rec.Period, err = ParseTime(periodStr)
	if err != nil {
		return model.PerformanceRecord{}, fmt.Errorf("failed to parse period: %w", err)
	}
	if yearly.Valid {
		rec.YearlyReturnPct = &yearly.Float64
	}
	if trailing.Valid {
		rec.Trailing12mReturnPct = &trailing.Float64
	}

	return rec, nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
