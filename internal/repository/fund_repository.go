package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
)

// FundRepository provides data access methods for the fund table. The fund
// table is the registry of CNPJs the valuation importer filters against.
type FundRepository struct {
	db *sql.DB
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// GetFunds retrieves all registered funds.
// Returns an empty slice if no funds are found.
func (r *FundRepository) GetFunds() ([]model.Fund, error) {
	query := `
		SELECT id, name, cnpj, type
		FROM fund
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		var f model.Fund
		var fundType sql.NullString

		if err := rows.Scan(&f.ID, &f.Name, &f.CNPJ, &fundType); err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		f.Type = fundType.String
		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// GetFund retrieves a single fund by ID.
// Returns ErrFundNotFound if it does not exist.
func (r *FundRepository) GetFund(fundID string) (model.Fund, error) {
	query := `
		SELECT id, name, cnpj, type
		FROM fund
		WHERE id = ?
	`

	var f model.Fund
	var fundType sql.NullString

	err := r.db.QueryRow(query, fundID).Scan(&f.ID, &f.Name, &f.CNPJ, &fundType)
	if err == sql.ErrNoRows {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund: %w", err)
	}

	f.Type = fundType.String
	return f, nil
}

// GetFundByCNPJ retrieves a fund by its canonical CNPJ.
// Returns ErrFundNotFound if it does not exist.
func (r *FundRepository) GetFundByCNPJ(canonicalCNPJ string) (model.Fund, error) {
	query := `
		SELECT id, name, cnpj, type
		FROM fund
		WHERE cnpj = ?
	`

	var f model.Fund
	var fundType sql.NullString

	err := r.db.QueryRow(query, canonicalCNPJ).Scan(&f.ID, &f.Name, &f.CNPJ, &fundType)
	if err == sql.ErrNoRows {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund by cnpj: %w", err)
	}

	f.Type = fundType.String
	return f, nil
}

// ListCNPJs retrieves the canonical CNPJs of all registered funds. This is
// the tracked set the importer filters archive rows against.
func (r *FundRepository) ListCNPJs() ([]string, error) {
	rows, err := r.db.Query(`SELECT cnpj FROM fund`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund CNPJs: %w", err)
	}
	defer rows.Close()

	cnpjs := []string{}

	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan fund CNPJ: %w", err)
		}
		cnpjs = append(cnpjs, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund CNPJs: %w", err)
	}

	return cnpjs, nil
}

// CreateFund inserts a new fund and returns it with its generated ID.
// Returns ErrDuplicateEntry when the CNPJ is already registered.
func (r *FundRepository) CreateFund(ctx context.Context, f model.Fund) (model.Fund, error) {
	f.ID = uuid.New().String()

	query := `
		INSERT INTO fund (id, name, cnpj, type)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, f.ID, f.Name, f.CNPJ, f.Type); err != nil {
		if existing, lookupErr := r.GetFundByCNPJ(f.CNPJ); lookupErr == nil && existing.ID != "" {
			return model.Fund{}, apperrors.ErrDuplicateEntry
		}
		return model.Fund{}, fmt.Errorf("failed to insert fund: %w", err)
	}

	return f, nil
}

// DeleteFund removes a fund. Returns ErrFundInUse when any portfolio still
// holds it, and ErrFundNotFound when it does not exist.
func (r *FundRepository) DeleteFund(ctx context.Context, fundID string) error {
	var holdings int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM portfolio_fund WHERE fund_id = ?`, fundID).Scan(&holdings)
	if err != nil {
		return fmt.Errorf("failed to check fund usage: %w", err)
	}
	if holdings > 0 {
		return apperrors.ErrFundInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM fund WHERE id = ?`, fundID)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}
