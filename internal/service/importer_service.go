package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/cnpj"
	"github.com/gcoelho/carteira-manager-backend/internal/cvm"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
)

// QuotaSource is the provenance tag written on every imported quota row.
const QuotaSource = "cvm-inf-diario"

// ArchiveFetcher downloads one monthly archive into destDir.
// *cvm.Client satisfies it; tests substitute a mock.
type ArchiveFetcher interface {
	FetchMonthlyArchive(ctx context.Context, year int, month time.Month, destDir string) cvm.FetchResult
}

// Logger is the narrow reporting capability the pipeline services depend
// on. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// ImporterService keeps the quota_value store current with the last N
// months of officially published quota prices, restricted to funds the
// system actually tracks.
type ImporterService struct {
	fundRepo  *repository.FundRepository
	quotaRepo *repository.QuotaRepository
	fetcher   ArchiveFetcher
	logger    Logger
}

// NewImporterService creates a new ImporterService.
func NewImporterService(
	fundRepo *repository.FundRepository,
	quotaRepo *repository.QuotaRepository,
	fetcher ArchiveFetcher,
	logger Logger,
) *ImporterService {
	return &ImporterService{
		fundRepo:  fundRepo,
		quotaRepo: quotaRepo,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// yearMonth identifies one calendar month of the archive series.
type yearMonth struct {
	year  int
	month time.Month
}

// monthsInWindow returns the months to fetch, newest first: the month
// containing start, then each previous month, down to monthsBack months
// before it (inclusive cutoff).
func monthsInWindow(start time.Time, monthsBack int) []yearMonth {
	months := make([]yearMonth, 0, monthsBack+1)
	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i <= monthsBack; i++ {
		m := current.AddDate(0, -i, 0)
		months = append(months, yearMonth{year: m.Year(), month: m.Month()})
	}
	return months
}

// Run imports the trailing monthsBack months of daily quota values ending
// at the month of startDate (zero value means today). Months that are not
// yet published (404) are skipped silently; upstream blocks (403) are
// logged and skipped; any other fetch or parse failure aborts the run and
// propagates after temp-file cleanup.
//
// With an empty fund registry the run returns a "skipped" summary and no
// error: there is nothing useful to import.
func (s *ImporterService) Run(ctx context.Context, startDate time.Time, monthsBack int) (model.ImportSummary, error) {
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	summary := model.ImportSummary{
		Status:    model.ImportStatusSuccess,
		StartedAt: time.Now().UTC(),
	}
	finish := func() {
		summary.FinishedAt = time.Now().UTC()
		summary.Duration = summary.FinishedAt.Sub(summary.StartedAt)
	}

	cnpjs, err := s.fundRepo.ListCNPJs()
	if err != nil {
		finish()
		return summary, fmt.Errorf("listing tracked funds: %w", err)
	}
	if len(cnpjs) == 0 {
		s.logger.Printf("import: no funds registered, nothing to do")
		summary.Status = model.ImportStatusSkipped
		finish()
		return summary, nil
	}

	// digits-only identifier -> canonical punctuated form
	tracked := make(map[string]string, len(cnpjs))
	for _, c := range cnpjs {
		tracked[cnpj.Normalize(c)] = c
	}

	tmpDir, err := os.MkdirTemp("", "inf-diario-*")
	if err != nil {
		finish()
		return summary, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	for _, ym := range monthsInWindow(startDate, monthsBack) {
		name := cvm.ArchiveFileName(ym.year, ym.month)

		result := s.fetcher.FetchMonthlyArchive(ctx, ym.year, ym.month, tmpDir)
		switch result.Outcome {
		case cvm.OutcomeFetched:
			// fall through to processing
		case cvm.OutcomeNotFound:
			continue
		case cvm.OutcomeForbidden:
			s.logger.Printf("import: %s blocked upstream (403), skipping month", name)
			continue
		default:
			finish()
			return summary, fmt.Errorf("%w: %s: %v", apperrors.ErrImportFetchFailed, name, result.Err)
		}

		imported, skipped, err := s.importArchive(ctx, result.Path, tracked)
		if err != nil {
			finish()
			return summary, fmt.Errorf("%w: %s: %v", apperrors.ErrImportParseFailed, name, err)
		}
		// bound temp usage; the deferred RemoveAll is the safety net
		_ = os.Remove(result.Path)

		summary.ArchivesProcessed++
		summary.RowsImported += imported
		summary.RowsSkipped += skipped
	}

	finish()
	s.logger.Printf("import: %d archives, %d rows imported, %d skipped in %s",
		summary.ArchivesProcessed, summary.RowsImported, summary.RowsSkipped, summary.Duration)

	return summary, nil
}

// importArchive parses one downloaded archive, filters rows against the
// tracked set, and batch-upserts the valid ones. Rows for untracked funds
// and rows with unparseable or non-positive values are counted as skipped.
func (s *ImporterService) importArchive(ctx context.Context, path string, tracked map[string]string) (int, int, error) {
	quotas := []model.QuotaValue{}
	skipped := 0

	err := cvm.ReadArchive(path, func(row cvm.Row) error {
		canonical, ok := tracked[cnpj.Normalize(row.CNPJ)]
		if !ok {
			skipped++
			return nil
		}

		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			skipped++
			return nil
		}

		value, err := strconv.ParseFloat(strings.ReplaceAll(row.Value, ",", "."), 64)
		if err != nil {
			skipped++
			return nil
		}

		quota, err := model.NewQuotaValue(canonical, date, value, QuotaSource)
		if err != nil {
			skipped++
			return nil
		}

		quotas = append(quotas, quota)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	written, err := s.quotaRepo.BatchUpsert(ctx, quotas)
	if err != nil {
		return 0, 0, fmt.Errorf("upserting quota batch: %w", err)
	}

	return written, skipped, nil
}
