package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrHoldingNotFound indicates that a portfolio-fund holding does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrQuotaNotFound indicates no quota value for a specific fund and date combination.
	ErrQuotaNotFound = errors.New("quota value not found")

	// ErrPerformanceNotFound indicates that a performance record does not exist.
	ErrPerformanceNotFound = errors.New("performance record not found")

	// ErrSettingNotFound indicates that a system setting key does not exist.
	ErrSettingNotFound = errors.New("system setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidCNPJ indicates that a fund registry number is not a valid CNPJ.
	ErrInvalidCNPJ = errors.New("invalid CNPJ")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrFundInUse indicates that a fund cannot be deleted because portfolios hold it.
	ErrFundInUse = errors.New("fund is in use")
)

// Pipeline errors represent failures of the batch jobs.
var (
	// ErrImportFetchFailed indicates a fatal transport failure while fetching
	// a monthly archive (anything other than the tolerated 404/403 statuses).
	ErrImportFetchFailed = errors.New("archive fetch failed")

	// ErrImportParseFailed indicates a malformed archive or CSV member.
	ErrImportParseFailed = errors.New("archive parse failed")
)
