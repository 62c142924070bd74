package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/service"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Aposentadoria").
//	    Archived().
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	Name        string
	Description string
	IsArchived  bool
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        MakeUniqueName("Test Portfolio"),
		Description: "Test description",
		IsArchived:  false,
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// Archived marks the portfolio as archived.
func (b *PortfolioBuilder) Archived() *PortfolioBuilder {
	b.IsArchived = true
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, name, description, is_archived)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Description, b.IsArchived)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		IsArchived:  b.IsArchived,
	}
}

// FundBuilder provides a fluent interface for creating test funds.
type FundBuilder struct {
	ID   string
	Name string
	CNPJ string
	Type string
}

// NewFund creates a FundBuilder with sensible defaults. The default CNPJ
// is unique per call.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:   MakeID(),
		Name: MakeUniqueName("Test Fund"),
		CNPJ: MakeCNPJ(),
		Type: "multimercado",
	}
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithCNPJ sets a custom canonical CNPJ.
func (b *FundBuilder) WithCNPJ(canonical string) *FundBuilder {
	b.CNPJ = canonical
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, name, cnpj, type)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.CNPJ, b.Type)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:   b.ID,
		Name: b.Name,
		CNPJ: b.CNPJ,
		Type: b.Type,
	}
}

// HoldingBuilder provides a fluent interface for creating test holdings.
type HoldingBuilder struct {
	ID            string
	PortfolioID   string
	FundID        string
	TotalQuotas   float64
	TotalInvested float64
}

// NewHolding creates a HoldingBuilder linking the given portfolio and fund.
func NewHolding(portfolioID, fundID string) *HoldingBuilder {
	return &HoldingBuilder{
		ID:            MakeID(),
		PortfolioID:   portfolioID,
		FundID:        fundID,
		TotalQuotas:   100,
		TotalInvested: 10000,
	}
}

// WithPosition sets the quota balance and invested value.
func (b *HoldingBuilder) WithPosition(quotas, invested float64) *HoldingBuilder {
	b.TotalQuotas = quotas
	b.TotalInvested = invested
	return b
}

// Build creates the holding in the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	query := `
		INSERT INTO portfolio_fund (id, portfolio_id, fund_id, total_quotas, total_invested)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.PortfolioID, b.FundID, b.TotalQuotas, b.TotalInvested)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Holding{
		ID:            b.ID,
		PortfolioID:   b.PortfolioID,
		FundID:        b.FundID,
		TotalQuotas:   b.TotalQuotas,
		TotalInvested: b.TotalInvested,
	}
}

// Convenience functions

// CreatePortfolio creates a portfolio with the given name and default values.
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Build(t, db)
}

// CreateArchivedPortfolio creates an archived portfolio with the given name.
func CreateArchivedPortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Archived().Build(t, db)
}

// CreateFund creates a fund with the given canonical CNPJ and default values.
func CreateFund(t *testing.T, db *sql.DB, canonicalCNPJ string) model.Fund {
	t.Helper()
	return NewFund().WithCNPJ(canonicalCNPJ).Build(t, db)
}

// CreateHolding creates a holding with the given position.
func CreateHolding(t *testing.T, db *sql.DB, portfolioID, fundID string, quotas, invested float64) model.Holding {
	t.Helper()
	return NewHolding(portfolioID, fundID).WithPosition(quotas, invested).Build(t, db)
}

// CreateQuota inserts one quota value row. Date is "2006-01-02".
func CreateQuota(t *testing.T, db *sql.DB, canonicalCNPJ, date string, value float64) {
	t.Helper()

	query := `
		INSERT INTO quota_value (id, fund_cnpj, date, value, source)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), canonicalCNPJ, date, value, service.QuotaSource)
	if err != nil {
		t.Fatalf("Failed to create test quota value: %v", err)
	}
}

// CreateQuotaSeries inserts one quota value per day over [from, to]
// (inclusive), with the value increasing by step per day. Dates are
// "2006-01-02".
func CreateQuotaSeries(t *testing.T, db *sql.DB, canonicalCNPJ, from, to string, start, step float64) {
	t.Helper()

	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		t.Fatalf("Failed to parse series start: %v", err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		t.Fatalf("Failed to parse series end: %v", err)
	}

	value := start
	for d := fromDate; !d.After(toDate); d = d.AddDate(0, 0, 1) {
		CreateQuota(t, db, canonicalCNPJ, d.Format("2006-01-02"), value)
		value += step
	}
}

var cnpjSequence int

// MakeCNPJ returns a unique canonical CNPJ for test funds.
func MakeCNPJ() string {
	cnpjSequence++
	return fmt.Sprintf("%02d.%03d.%03d/0001-%02d",
		cnpjSequence%100, cnpjSequence%1000, (cnpjSequence*7)%1000, cnpjSequence%100)
}
