package model

import (
	"fmt"
	"time"
)

// QuotaValue represents a fund's official quota price on one calendar date.
// Rows are unique per (Date, FundCNPJ); re-imports overwrite in place.
type QuotaValue struct {
	ID       string    `json:"id"`
	FundCNPJ string    `json:"fundCnpj"`
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Source   string    `json:"source"`
}

// NewQuotaValue builds a QuotaValue, enforcing the store invariants at
// construction time: a real date and a strictly positive value. Rows that
// fail here are skipped by the importer, never persisted.
func NewQuotaValue(fundCNPJ string, date time.Time, value float64, source string) (QuotaValue, error) {
	if fundCNPJ == "" {
		return QuotaValue{}, fmt.Errorf("quota value requires a fund CNPJ")
	}
	if date.IsZero() {
		return QuotaValue{}, fmt.Errorf("quota value for fund %s requires a date", fundCNPJ)
	}
	if value <= 0 {
		return QuotaValue{}, fmt.Errorf("quota value for fund %s on %s must be positive, got %f",
			fundCNPJ, date.Format("2006-01-02"), value)
	}
	return QuotaValue{
		FundCNPJ: fundCNPJ,
		Date:     date.UTC(),
		Value:    value,
		Source:   source,
	}, nil
}
