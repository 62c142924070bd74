package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/api/handlers"
	"github.com/gcoelho/carteira-manager-backend/internal/config"
	"github.com/gcoelho/carteira-manager-backend/internal/cvm"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/scheduler"
	"github.com/gcoelho/carteira-manager-backend/internal/testutil"
)

// TestJobsHandler tests the manual trigger endpoints end to end against
// the real scheduler and pipeline services.
func TestJobsHandler(t *testing.T) {
	t.Run("import trigger returns summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fund := testutil.CreateFund(t, db, testutil.MakeCNPJ())

		now := time.Now().UTC()
		fetcher := testutil.NewMockArchiveFetcher().
			WithMonth(now.Year(), now.Month(), []cvm.Row{
				testutil.ArchiveRow(fund.CNPJ, now.AddDate(0, 0, -1), 100.50),
			})

		sched := scheduler.New(
			testutil.NewTestImporterService(t, db, fetcher),
			testutil.NewTestPerformanceService(t, db),
			config.ImportConfig{MonthsBack: 0},
			config.SchedulerConfig{ImportSpec: "0 6 * * *", PerformanceSpec: "30 6 * * *"},
			testutil.SilentLogger{},
		)
		handler := handlers.NewJobsHandler(sched)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/import", nil)
		rec := httptest.NewRecorder()

		handler.RunImport(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var summary model.ImportSummary
		testutil.DecodeJSONResponse(t, rec, &summary)
		if summary.RowsImported != 1 {
			t.Errorf("Expected 1 row imported, got %d", summary.RowsImported)
		}
		testutil.AssertRowCount(t, db, "quota_value", 1)
	})

	t.Run("performance trigger returns summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		sched := scheduler.New(
			testutil.NewTestImporterService(t, db, testutil.NewMockArchiveFetcher()),
			testutil.NewTestPerformanceService(t, db),
			config.ImportConfig{},
			config.SchedulerConfig{ImportSpec: "0 6 * * *", PerformanceSpec: "30 6 * * *"},
			testutil.SilentLogger{},
		)
		handler := handlers.NewJobsHandler(sched)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/performance", nil)
		rec := httptest.NewRecorder()

		handler.RunPerformance(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var summary model.CalculationSummary
		testutil.DecodeJSONResponse(t, rec, &summary)
		if summary.HoldingsProcessed != 0 {
			t.Errorf("Expected no holdings processed on empty database, got %d", summary.HoldingsProcessed)
		}
	})
}
