package testutil

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/gcoelho/carteira-manager-backend/internal/cvm"
)

// MockArchiveFetcher is a mock implementation of service.ArchiveFetcher.
// It serves archives built from in-memory rows instead of downloading
// from the CVM portal. Months without configured rows report
// OutcomeNotFound, matching how the portal answers for unpublished
// months.
type MockArchiveFetcher struct {
	// Rows maps an archive file name (see cvm.ArchiveFileName) to the
	// quota rows its CSV member should contain.
	Rows map[string][]cvm.Row
	// Outcomes forces a fetch outcome for specific archive file names,
	// overriding the Rows lookup. Useful for simulating 403s and
	// transport failures.
	Outcomes map[string]cvm.FetchOutcome
	// FetchCount tracks how many times FetchMonthlyArchive was called.
	FetchCount int
	// Err is attached to results with OutcomeFailed.
	Err error
}

// NewMockArchiveFetcher creates a mock fetcher with no archives
// configured; every month reports OutcomeNotFound until rows are added.
func NewMockArchiveFetcher() *MockArchiveFetcher {
	return &MockArchiveFetcher{
		Rows:     map[string][]cvm.Row{},
		Outcomes: map[string]cvm.FetchOutcome{},
	}
}

// WithMonth configures the rows served for one archive month.
func (m *MockArchiveFetcher) WithMonth(year int, month time.Month, rows []cvm.Row) *MockArchiveFetcher {
	m.Rows[cvm.ArchiveFileName(year, month)] = rows
	return m
}

// WithOutcome forces the fetch outcome for one archive month.
func (m *MockArchiveFetcher) WithOutcome(year int, month time.Month, outcome cvm.FetchOutcome) *MockArchiveFetcher {
	m.Outcomes[cvm.ArchiveFileName(year, month)] = outcome
	return m
}

// FetchMonthlyArchive implements service.ArchiveFetcher. It writes a
// real zip archive into destDir so the importer exercises the full
// parse path.
func (m *MockArchiveFetcher) FetchMonthlyArchive(_ context.Context, year int, month time.Month, destDir string) cvm.FetchResult {
	m.FetchCount++

	name := cvm.ArchiveFileName(year, month)
	if outcome, ok := m.Outcomes[name]; ok {
		result := cvm.FetchResult{Outcome: outcome}
		if outcome == cvm.OutcomeFailed {
			result.Err = m.Err
			if result.Err == nil {
				result.Err = fmt.Errorf("mock fetch failure for %s", name)
			}
		}
		return result
	}

	rows, ok := m.Rows[name]
	if !ok {
		return cvm.FetchResult{Outcome: cvm.OutcomeNotFound}
	}

	path := filepath.Join(destDir, name)
	if err := WriteArchiveFile(path, rows); err != nil {
		return cvm.FetchResult{Outcome: cvm.OutcomeFailed, Err: err}
	}
	return cvm.FetchResult{Outcome: cvm.OutcomeFetched, Path: path}
}

// ArchiveRow builds one CSV row for a mock archive, formatting the
// value with the comma decimal separator the CVM files use.
func ArchiveRow(canonicalCNPJ string, date time.Time, value float64) cvm.Row {
	return cvm.Row{
		CNPJ:  canonicalCNPJ,
		Date:  date.Format("2006-01-02"),
		Value: strings.ReplaceAll(fmt.Sprintf("%.6f", value), ".", ","),
	}
}

// BuildArchive writes a zip archive of daily quota rows to path,
// failing the test on error. The CSV member mirrors the published
// format: semicolon-delimited, ISO-8859-1 encoded, with the extra
// columns real files carry.
func BuildArchive(t *testing.T, path string, rows []cvm.Row) {
	t.Helper()

	if err := WriteArchiveFile(path, rows); err != nil {
		t.Fatalf("Failed to build archive: %v", err)
	}
}

// WriteArchiveFile writes a zip archive of daily quota rows to path.
func WriteArchiveFile(path string, rows []cvm.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	member, err := zw.Create(strings.TrimSuffix(filepath.Base(path), ".zip") + ".csv")
	if err != nil {
		return fmt.Errorf("creating csv member: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("TP_FUNDO;CNPJ_FUNDO;DT_COMPTC;VL_TOTAL;VL_QUOTA;VL_PATRIM_LIQ;CAPTC_DIA;RESG_DIA;NR_COTST\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("FI;%s;%s;1000000,00;%s;1000000,00;0,00;0,00;150\n",
			row.CNPJ, row.Date, row.Value))
	}

	encoded, err := charmap.ISO8859_1.NewEncoder().String(sb.String())
	if err != nil {
		return fmt.Errorf("encoding csv member: %w", err)
	}
	if _, err := member.Write([]byte(encoded)); err != nil {
		return fmt.Errorf("writing csv member: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}
