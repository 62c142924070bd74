package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
)

// HoldingRepository provides data access methods for the portfolio_fund
// table: a portfolio's positions (quotas held + invested value) in funds.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// GetActiveHoldings retrieves every holding with a positive quota balance,
// joined with its fund's CNPJ. This is the performance calculator's input.
func (r *HoldingRepository) GetActiveHoldings() ([]model.HoldingPosition, error) {
	query := `
		SELECT pf.id, pf.portfolio_id, pf.fund_id, pf.total_quotas, pf.total_invested,
		       f.name, f.cnpj
		FROM portfolio_fund pf
		JOIN fund f ON f.id = pf.fund_id
		WHERE pf.total_quotas > 0
		ORDER BY pf.portfolio_id ASC, f.name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active holdings: %w", err)
	}
	defer rows.Close()

	holdings := []model.HoldingPosition{}

	for rows.Next() {
		var h model.HoldingPosition

		err := rows.Scan(
			&h.ID,
			&h.PortfolioID,
			&h.FundID,
			&h.TotalQuotas,
			&h.TotalInvested,
			&h.FundName,
			&h.FundCNPJ,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding results: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// GetHoldingsByPortfolio retrieves all holdings of one portfolio, joined
// with fund metadata.
func (r *HoldingRepository) GetHoldingsByPortfolio(portfolioID string) ([]model.HoldingPosition, error) {
	query := `
		SELECT pf.id, pf.portfolio_id, pf.fund_id, pf.total_quotas, pf.total_invested,
		       f.name, f.cnpj
		FROM portfolio_fund pf
		JOIN fund f ON f.id = pf.fund_id
		WHERE pf.portfolio_id = ?
		ORDER BY f.name ASC
	`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio holdings: %w", err)
	}
	defer rows.Close()

	holdings := []model.HoldingPosition{}

	for rows.Next() {
		var h model.HoldingPosition

		err := rows.Scan(
			&h.ID,
			&h.PortfolioID,
			&h.FundID,
			&h.TotalQuotas,
			&h.TotalInvested,
			&h.FundName,
			&h.FundCNPJ,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding results: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// GetHolding retrieves a single holding by ID.
// Returns ErrHoldingNotFound if it does not exist.
func (r *HoldingRepository) GetHolding(holdingID string) (model.Holding, error) {
	query := `
		SELECT id, portfolio_id, fund_id, total_quotas, total_invested
		FROM portfolio_fund
		WHERE id = ?
	`

	var h model.Holding

	err := r.db.QueryRow(query, holdingID).Scan(
		&h.ID,
		&h.PortfolioID,
		&h.FundID,
		&h.TotalQuotas,
		&h.TotalInvested,
	)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query holding: %w", err)
	}

	return h, nil
}

// CreateHolding inserts a new holding and returns it with its generated ID.
// Returns ErrDuplicateEntry when the portfolio already holds the fund.
func (r *HoldingRepository) CreateHolding(ctx context.Context, h model.Holding) (model.Holding, error) {
	h.ID = uuid.New().String()

	query := `
		INSERT INTO portfolio_fund (id, portfolio_id, fund_id, total_quotas, total_invested)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, h.ID, h.PortfolioID, h.FundID, h.TotalQuotas, h.TotalInvested); err != nil {
		var existing int
		checkErr := r.db.QueryRow(
			`SELECT COUNT(*) FROM portfolio_fund WHERE portfolio_id = ? AND fund_id = ?`,
			h.PortfolioID, h.FundID,
		).Scan(&existing)
		if checkErr == nil && existing > 0 {
			return model.Holding{}, apperrors.ErrDuplicateEntry
		}
		return model.Holding{}, fmt.Errorf("failed to insert holding: %w", err)
	}

	return h, nil
}

// UpdateHolding updates a holding's position (quotas and invested value).
// Returns ErrHoldingNotFound if it does not exist.
func (r *HoldingRepository) UpdateHolding(ctx context.Context, h model.Holding) error {
	query := `
		UPDATE portfolio_fund
		SET total_quotas = ?, total_invested = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, h.TotalQuotas, h.TotalInvested, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// DeleteHolding removes a holding. Performance history cascades.
func (r *HoldingRepository) DeleteHolding(ctx context.Context, holdingID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio_fund WHERE id = ?`, holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}
