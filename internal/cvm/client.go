// Package cvm fetches and parses the CVM "informe diário" open-data
// archives: monthly zip files of semicolon-delimited CSV reports with one
// row per fund per day, carrying the official quota value.
package cvm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseURL is the CVM open-data location of the daily fund reports.
const DefaultBaseURL = "https://dados.cvm.gov.br/dados/FI/DOC/INF_DIARIO/DADOS"

// Client downloads monthly archives from the CVM open-data portal.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client for the given base URL. A zero timeout
// disables the client-level bound; the importer treats an exceeded
// timeout as a fatal fetch failure.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// ArchiveFileName builds the deterministic archive name for a month:
// inf_diario_fi_YYYYMM.zip.
func ArchiveFileName(year int, month time.Month) string {
	return fmt.Sprintf("inf_diario_fi_%04d%02d.zip", year, int(month))
}

// FetchMonthlyArchive downloads the archive for one month into destDir and
// reports the outcome as a typed tag:
//
//   - 200: OutcomeFetched, with the path of the downloaded file
//   - 404: OutcomeNotFound (month not yet published)
//   - 403: OutcomeForbidden (upstream block)
//   - anything else, or a transport error: OutcomeFailed with the cause
func (c *Client) FetchMonthlyArchive(ctx context.Context, year int, month time.Month, destDir string) FetchResult {
	filename := ArchiveFileName(year, month)
	url := c.baseURL + "/" + filename

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{Outcome: OutcomeFailed, Err: fmt.Errorf("building request for %s: %w", url, err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FetchResult{Outcome: OutcomeFailed, Err: fmt.Errorf("fetching %s: %w", url, err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to download
	case http.StatusNotFound:
		return FetchResult{Outcome: OutcomeNotFound}
	case http.StatusForbidden:
		return FetchResult{Outcome: OutcomeForbidden}
	default:
		return FetchResult{
			Outcome: OutcomeFailed,
			Err:     fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode),
		}
	}

	path := filepath.Join(destDir, filename)
	out, err := os.Create(path)
	if err != nil {
		return FetchResult{Outcome: OutcomeFailed, Err: fmt.Errorf("creating %s: %w", path, err)}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return FetchResult{Outcome: OutcomeFailed, Err: fmt.Errorf("downloading %s: %w", url, err)}
	}
	if err := out.Close(); err != nil {
		return FetchResult{Outcome: OutcomeFailed, Err: fmt.Errorf("closing %s: %w", path, err)}
	}

	return FetchResult{Outcome: OutcomeFetched, Path: path}
}
