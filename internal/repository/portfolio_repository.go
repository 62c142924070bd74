package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetAllPortfolios retrieves all portfolios, including archived ones.
// Returns an empty slice if none exist.
func (r *PortfolioRepository) GetAllPortfolios() ([]model.Portfolio, error) {
	query := `
		SELECT id, name, description, is_archived
		FROM portfolio
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio
		var description sql.NullString

		if err := rows.Scan(&p.ID, &p.Name, &description, &p.IsArchived); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		p.Description = description.String
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio by ID.
// Returns ErrPortfolioNotFound if it does not exist.
func (r *PortfolioRepository) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, name, description, is_archived
		FROM portfolio
		WHERE id = ?
	`

	var p model.Portfolio
	var description sql.NullString

	err := r.db.QueryRow(query, portfolioID).Scan(&p.ID, &p.Name, &description, &p.IsArchived)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	p.Description = description.String
	return p, nil
}

// CreatePortfolio inserts a new portfolio and returns it with its generated ID.
func (r *PortfolioRepository) CreatePortfolio(ctx context.Context, p model.Portfolio) (model.Portfolio, error) {
	p.ID = uuid.New().String()

	query := `
		INSERT INTO portfolio (id, name, description, is_archived)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.IsArchived); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return p, nil
}

// UpdatePortfolio updates a portfolio's mutable fields.
// Returns ErrPortfolioNotFound if it does not exist.
func (r *PortfolioRepository) UpdatePortfolio(ctx context.Context, p model.Portfolio) error {
	query := `
		UPDATE portfolio
		SET name = ?, description = ?, is_archived = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.IsArchived, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}

// DeletePortfolio removes a portfolio. Holdings and performance history
// cascade via foreign keys.
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	query := `DELETE FROM portfolio WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}
