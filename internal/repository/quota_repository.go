package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
)

// QuotaRepository provides data access methods for the quota_value table:
// the valuation store keyed by (fund_cnpj, date). The importer writes it,
// the performance calculator and reporting endpoints only read it.
type QuotaRepository struct {
	db *sql.DB
}

// NewQuotaRepository creates a new QuotaRepository with the provided database connection.
func NewQuotaRepository(db *sql.DB) *QuotaRepository {
	return &QuotaRepository{db: db}
}

// BatchUpsert writes a batch of quota values inside one transaction,
// using the (fund_cnpj, date) natural key for conflict resolution: existing
// rows are overwritten (last write wins), new rows are inserted. Returns
// the number of rows written.
func (r *QuotaRepository) BatchUpsert(ctx context.Context, quotas []model.QuotaValue) (int, error) {
	if len(quotas) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin quota upsert transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quota_value (id, fund_cnpj, date, value, source)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fund_cnpj, date) DO UPDATE SET
			value = excluded.value,
			source = excluded.source
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare quota upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, q := range quotas {
		_, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			q.FundCNPJ,
			q.Date.Format("2006-01-02"),
			q.Value,
			q.Source,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert quota for %s on %s: %w",
				q.FundCNPJ, q.Date.Format("2006-01-02"), err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit quota upsert: %w", err)
	}

	return written, nil
}

// GetQuotaOnDate retrieves the quota value of a fund on an exact date.
// Returns ErrQuotaNotFound when no value was published for that date.
func (r *QuotaRepository) GetQuotaOnDate(fundCNPJ string, date time.Time) (float64, error) {
	query := `
		SELECT value
		FROM quota_value
		WHERE fund_cnpj = ? AND date = ?
	`

	var value float64
	err := r.db.QueryRow(query, fundCNPJ, date.Format("2006-01-02")).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, apperrors.ErrQuotaNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query quota value: %w", err)
	}

	return value, nil
}

// CountQuotas returns the number of stored quota rows for a fund. Used by
// the system endpoints to report import coverage.
func (r *QuotaRepository) CountQuotas(fundCNPJ string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM quota_value WHERE fund_cnpj = ?`, fundCNPJ).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quota values: %w", err)
	}
	return count, nil
}
