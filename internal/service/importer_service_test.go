package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/cvm"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/service"
	"github.com/gcoelho/carteira-manager-backend/internal/testutil"
)

// january2024 anchors the import window tests on a fixed month so the
// mock archives and assertions line up regardless of when the suite runs.
var january2024 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// TestImporterService_Run_ImportsTrackedFunds tests the core import
// path: rows for registered funds land in the quota store, rows for
// every other fund in the archive are counted as skipped.
//
// WHY: One archive month covers thousands of funds; the registry filter
// is what keeps the store scoped to actual holdings.
func TestImporterService_Run_ImportsTrackedFunds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fund := testutil.CreateFund(t, db, "12.345.678/0001-95")

	fetcher := testutil.NewMockArchiveFetcher().
		WithMonth(2024, time.January, []cvm.Row{
			testutil.ArchiveRow(fund.CNPJ, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 100.50),
			testutil.ArchiveRow(fund.CNPJ, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 101.25),
			testutil.ArchiveRow("99.888.777/0001-66", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 50.00),
		})
	svc := testutil.NewTestImporterService(t, db, fetcher)

	summary, err := svc.Run(context.Background(), january2024, 0)

	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if summary.Status != model.ImportStatusSuccess {
		t.Errorf("Expected success status, got %q", summary.Status)
	}
	if summary.ArchivesProcessed != 1 {
		t.Errorf("Expected 1 archive processed, got %d", summary.ArchivesProcessed)
	}
	if summary.RowsImported != 2 {
		t.Errorf("Expected 2 rows imported, got %d", summary.RowsImported)
	}
	if summary.RowsSkipped != 1 {
		t.Errorf("Expected 1 untracked row skipped, got %d", summary.RowsSkipped)
	}
	testutil.AssertRowCount(t, db, "quota_value", 2)
}

// TestImporterService_Run_Idempotent tests that re-running the import
// over the same archive leaves one row per (fund, date) with the
// latest value, not duplicates.
func TestImporterService_Run_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fund := testutil.CreateFund(t, db, "12.345.678/0001-95")
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	fetcher := testutil.NewMockArchiveFetcher().
		WithMonth(2024, time.January, []cvm.Row{
			testutil.ArchiveRow(fund.CNPJ, day, 100.00),
		})
	svc := testutil.NewTestImporterService(t, db, fetcher)

	if _, err := svc.Run(context.Background(), january2024, 0); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// Republished archive with a corrected value for the same day.
	fetcher.WithMonth(2024, time.January, []cvm.Row{
		testutil.ArchiveRow(fund.CNPJ, day, 100.75),
	})

	if _, err := svc.Run(context.Background(), january2024, 0); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	testutil.AssertRowCount(t, db, "quota_value", 1)

	var value float64
	err := db.QueryRow("SELECT value FROM quota_value WHERE fund_cnpj = ?", fund.CNPJ).Scan(&value)
	if err != nil {
		t.Fatalf("Failed to read stored quota: %v", err)
	}
	if value != 100.75 {
		t.Errorf("Expected re-import to overwrite value with 100.75, got %v", value)
	}
}

// TestImporterService_Run_SkipsInvalidRows tests the per-row skip
// rules: unparseable dates, unparseable values and non-positive values
// never reach the store and never abort the run.
func TestImporterService_Run_SkipsInvalidRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fund := testutil.CreateFund(t, db, "12.345.678/0001-95")

	fetcher := testutil.NewMockArchiveFetcher().
		WithMonth(2024, time.January, []cvm.Row{
			{CNPJ: fund.CNPJ, Date: "2024-01-02", Value: "100,50"},
			{CNPJ: fund.CNPJ, Date: "02/01/2024", Value: "100,50"},
			{CNPJ: fund.CNPJ, Date: "2024-01-03", Value: "n/a"},
			{CNPJ: fund.CNPJ, Date: "2024-01-04", Value: "0,00"},
			{CNPJ: fund.CNPJ, Date: "2024-01-05", Value: "-1,00"},
		})
	svc := testutil.NewTestImporterService(t, db, fetcher)

	summary, err := svc.Run(context.Background(), january2024, 0)

	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if summary.RowsImported != 1 {
		t.Errorf("Expected 1 valid row imported, got %d", summary.RowsImported)
	}
	if summary.RowsSkipped != 4 {
		t.Errorf("Expected 4 invalid rows skipped, got %d", summary.RowsSkipped)
	}
	testutil.AssertRowCount(t, db, "quota_value", 1)
}

// TestImporterService_Run_MatchesCNPJFormatVariants tests that archive
// rows match the registry regardless of punctuation differences.
func TestImporterService_Run_MatchesCNPJFormatVariants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fund := testutil.CreateFund(t, db, "12.345.678/0001-95")

	// Same fund, digits-only as some archive generations publish it.
	fetcher := testutil.NewMockArchiveFetcher().
		WithMonth(2024, time.January, []cvm.Row{
			{CNPJ: "12345678000195", Date: "2024-01-02", Value: "100,50"},
		})
	svc := testutil.NewTestImporterService(t, db, fetcher)

	summary, err := svc.Run(context.Background(), january2024, 0)

	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if summary.RowsImported != 1 {
		t.Errorf("Expected digits-only CNPJ to match tracked fund, imported %d rows", summary.RowsImported)
	}

	// Stored rows carry the canonical punctuated identity.
	var stored string
	if err := db.QueryRow("SELECT fund_cnpj FROM quota_value").Scan(&stored); err != nil {
		t.Fatalf("Failed to read stored quota: %v", err)
	}
	if stored != fund.CNPJ {
		t.Errorf("Expected stored CNPJ %q, got %q", fund.CNPJ, stored)
	}
}

// TestImporterService_Run_WindowAndMissingMonths tests the month walk:
// monthsBack earlier months are requested alongside the current one,
// and unpublished months (404) are skipped without failing the run.
func TestImporterService_Run_WindowAndMissingMonths(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fund := testutil.CreateFund(t, db, "12.345.678/0001-95")

	// December published, January not yet; November missing too.
	fetcher := testutil.NewMockArchiveFetcher().
		WithMonth(2023, time.December, []cvm.Row{
			testutil.ArchiveRow(fund.CNPJ, time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), 99.10),
		})
	svc := testutil.NewTestImporterService(t, db, fetcher)

	summary, err := svc.Run(context.Background(), january2024, 2)

	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if fetcher.FetchCount != 3 {
		t.Errorf("Expected 3 months requested (Jan, Dec, Nov), got %d", fetcher.FetchCount)
	}
	if summary.ArchivesProcessed != 1 {
		t.Errorf("Expected only the published month processed, got %d", summary.ArchivesProcessed)
	}
	if summary.RowsImported != 1 {
		t.Errorf("Expected 1 row imported, got %d", summary.RowsImported)
	}
}

// TestImporterService_Run_EmptyRegistry tests that a run with no
// registered funds reports a skipped status without touching the
// network.
func TestImporterService_Run_EmptyRegistry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fetcher := testutil.NewMockArchiveFetcher()
	svc := testutil.NewTestImporterService(t, db, fetcher)

	summary, err := svc.Run(context.Background(), january2024, 2)

	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if summary.Status != model.ImportStatusSkipped {
		t.Errorf("Expected skipped status, got %q", summary.Status)
	}
	if fetcher.FetchCount != 0 {
		t.Errorf("Expected no fetches with an empty registry, got %d", fetcher.FetchCount)
	}
}

// TestImporterService_Run_FetchFailures tests the error taxonomy of the
// fetch step: 403 is logged and skipped, anything harder aborts the run.
func TestImporterService_Run_FetchFailures(t *testing.T) {
	t.Run("forbidden month is skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fund := testutil.CreateFund(t, db, "12.345.678/0001-95")

		fetcher := testutil.NewMockArchiveFetcher().
			WithOutcome(2024, time.January, cvm.OutcomeForbidden).
			WithMonth(2023, time.December, []cvm.Row{
				testutil.ArchiveRow(fund.CNPJ, time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), 99.10),
			})
		svc := testutil.NewTestImporterService(t, db, fetcher)

		summary, err := svc.Run(context.Background(), january2024, 1)

		if err != nil {
			t.Fatalf("Run() returned unexpected error: %v", err)
		}
		if summary.ArchivesProcessed != 1 {
			t.Errorf("Expected the non-blocked month processed, got %d", summary.ArchivesProcessed)
		}
	})

	t.Run("fetch failure aborts the run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateFund(t, db, "12.345.678/0001-95")

		fetcher := testutil.NewMockArchiveFetcher().
			WithOutcome(2024, time.January, cvm.OutcomeFailed)
		fetcher.Err = errors.New("upstream timeout")
		svc := testutil.NewTestImporterService(t, db, fetcher)

		_, err := svc.Run(context.Background(), january2024, 2)

		if !errors.Is(err, apperrors.ErrImportFetchFailed) {
			t.Errorf("Expected ErrImportFetchFailed, got: %v", err)
		}
	})

	t.Run("unreadable archive aborts the run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateFund(t, db, "12.345.678/0001-95")

		// Fetched outcome with no file behind it.
		fetcher := testutil.NewMockArchiveFetcher().
			WithOutcome(2024, time.January, cvm.OutcomeFetched)
		svc := testutil.NewTestImporterService(t, db, fetcher)

		_, err := svc.Run(context.Background(), january2024, 0)

		if !errors.Is(err, apperrors.ErrImportParseFailed) {
			t.Errorf("Expected ErrImportParseFailed, got: %v", err)
		}
	})
}

// TestImporterService_Run_MultipleTrackedFunds tests that one archive
// feeds every registered fund in a single pass.
func TestImporterService_Run_MultipleTrackedFunds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fundA := testutil.CreateFund(t, db, "12.345.678/0001-95")
	fundB := testutil.CreateFund(t, db, "98.765.432/0001-10")

	fetcher := testutil.NewMockArchiveFetcher().
		WithMonth(2024, time.January, []cvm.Row{
			testutil.ArchiveRow(fundA.CNPJ, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 100),
			testutil.ArchiveRow(fundB.CNPJ, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 200),
			testutil.ArchiveRow(fundB.CNPJ, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 201),
		})
	svc := testutil.NewTestImporterService(t, db, fetcher)

	summary, err := svc.Run(context.Background(), january2024, 0)

	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if summary.RowsImported != 3 {
		t.Errorf("Expected 3 rows imported across both funds, got %d", summary.RowsImported)
	}

	var countA int
	if err := db.QueryRow("SELECT COUNT(*) FROM quota_value WHERE fund_cnpj = ?", fundA.CNPJ).Scan(&countA); err != nil {
		t.Fatalf("Failed to count quotas: %v", err)
	}
	if countA != 1 {
		t.Errorf("Expected 1 quota for fund A, got %d", countA)
	}
}

// Source tag check kept separate: downstream reporting distinguishes
// imported values from any future manual entries by this marker.
func TestImporterService_Run_TagsSource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fund := testutil.CreateFund(t, db, "12.345.678/0001-95")

	fetcher := testutil.NewMockArchiveFetcher().
		WithMonth(2024, time.January, []cvm.Row{
			testutil.ArchiveRow(fund.CNPJ, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 100),
		})
	svc := testutil.NewTestImporterService(t, db, fetcher)

	if _, err := svc.Run(context.Background(), january2024, 0); err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}

	var source string
	if err := db.QueryRow("SELECT source FROM quota_value").Scan(&source); err != nil {
		t.Fatalf("Failed to read stored quota: %v", err)
	}
	if source != service.QuotaSource {
		t.Errorf("Expected source %q, got %q", service.QuotaSource, source)
	}
}
