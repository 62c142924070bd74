package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/gcoelho/carteira-manager-backend/internal/repository"
	"github.com/gcoelho/carteira-manager-backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

var nameSequence int

// MakeUniqueName returns prefix with a unique suffix, for columns with
// unique constraints.
func MakeUniqueName(prefix string) string {
	nameSequence++
	return fmt.Sprintf("%s %d", prefix, nameSequence)
}

// SilentLogger discards pipeline log output so test runs stay quiet.
type SilentLogger struct{}

// Printf implements service.Logger.
func (SilentLogger) Printf(format string, v ...any) {}

// NewTestPortfolioService wires a PortfolioService over the test database.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	fundRepo := repository.NewFundRepository(db)

	return service.NewPortfolioService(
		portfolioRepo,
		holdingRepo,
		fundRepo,
	)
}

// NewTestFundService wires a FundService over the test database.
func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)

	return service.NewFundService(
		fundRepo,
		quotaRepo,
	)
}

// NewTestImporterService wires an ImporterService over the test database
// with the given archive fetcher.
func NewTestImporterService(t *testing.T, db *sql.DB, fetcher service.ArchiveFetcher) *service.ImporterService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)

	return service.NewImporterService(
		fundRepo,
		quotaRepo,
		fetcher,
		SilentLogger{},
	)
}

// NewTestPerformanceService wires a PerformanceService over the test database.
func NewTestPerformanceService(t *testing.T, db *sql.DB) *service.PerformanceService {
	t.Helper()

	holdingRepo := repository.NewHoldingRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)
	perfRepo := repository.NewPerformanceRepository(db)

	return service.NewPerformanceService(
		holdingRepo,
		quotaRepo,
		perfRepo,
		SilentLogger{},
	)
}

// NewTestCredentialsService wires a CredentialsService with a generated
// fernet key over the test database.
func NewTestCredentialsService(t *testing.T, db *sql.DB) *service.CredentialsService {
	t.Helper()

	systemRepo := repository.NewSystemRepository(db)

	svc, err := service.NewCredentialsService(systemRepo, "")
	if err != nil {
		t.Fatalf("Failed to create credentials service: %v", err)
	}
	return svc
}
