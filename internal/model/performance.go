package model

import "time"

// PerformanceRecord is one computed performance snapshot for a holding
// within a portfolio, for a given month. Period is the last calendar day
// of that month. Rows are unique per (PortfolioID, HoldingID, Period).
//
// YearlyReturnPct and Trailing12mReturnPct are nil exactly when the quota
// history needed to anchor them is unavailable (no quota near January 1st,
// or fewer than 12 months of history).
type PerformanceRecord struct {
	ID                   string    `json:"id"`
	PortfolioID          string    `json:"portfolioId"`
	HoldingID            string    `json:"holdingId"`
	Period               time.Time `json:"period"`
	MonthlyReturnPct     float64   `json:"monthlyReturnPct"`
	YearlyReturnPct      *float64  `json:"yearlyReturnPct"`
	Trailing12mReturnPct *float64  `json:"trailing12mReturnPct"`
	Earnings             float64   `json:"earnings"`
}

// ImportStatus is the overall outcome of an import run.
type ImportStatus string

const (
	// ImportStatusSuccess means the run completed; individual months may
	// still have been skipped (404/403).
	ImportStatusSuccess ImportStatus = "success"

	// ImportStatusSkipped means there was nothing to do (empty fund registry).
	ImportStatusSkipped ImportStatus = "skipped"
)

// ImportSummary is the structured result of a ValuationImporter run.
type ImportSummary struct {
	Status            ImportStatus  `json:"status"`
	ArchivesProcessed int           `json:"archivesProcessed"`
	RowsImported      int           `json:"rowsImported"`
	RowsSkipped       int           `json:"rowsSkipped"`
	StartedAt         time.Time     `json:"startedAt"`
	FinishedAt        time.Time     `json:"finishedAt"`
	Duration          time.Duration `json:"duration"`
}

// CalculationSummary is the structured result of a PerformanceCalculator run.
type CalculationSummary struct {
	HoldingsProcessed int           `json:"holdingsProcessed"`
	RecordsWritten    int           `json:"recordsWritten"`
	HoldingsSkipped   int           `json:"holdingsSkipped"`
	Errors            int           `json:"errors"`
	StartedAt         time.Time     `json:"startedAt"`
	FinishedAt        time.Time     `json:"finishedAt"`
	Duration          time.Duration `json:"duration"`
}
