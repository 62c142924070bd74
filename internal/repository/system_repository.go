package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
)

// SystemRepository provides data access methods for the system_setting table.
type SystemRepository struct {
	db *sql.DB
}

// NewSystemRepository creates a new SystemRepository with the provided database connection.
func NewSystemRepository(db *sql.DB) *SystemRepository {
	return &SystemRepository{db: db}
}

// GetSetting retrieves a setting value by key.
// Returns ErrSettingNotFound if the key does not exist.
func (r *SystemRepository) GetSetting(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM system_setting WHERE "key" = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting writes a setting value, overwriting any existing value for the key.
func (r *SystemRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, uuid.New().String(), key, value); err != nil {
		return fmt.Errorf("failed to set system setting %s: %w", key, err)
	}

	return nil
}
