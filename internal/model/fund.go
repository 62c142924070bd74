package model

// Fund represents an investment fund tracked by the system.
// CNPJ is stored in the canonical punctuated form (XX.XXX.XXX/XXXX-XX)
// and uniquely identifies the fund in the national registry.
type Fund struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
	Type string `json:"type"`
}

// Holding represents a portfolio's position in one fund: the total amount
// invested and the total quotas held. It is the junction between portfolio
// and fund, and the input for performance calculation.
type Holding struct {
	ID            string  `json:"id"`
	PortfolioID   string  `json:"portfolioId"`
	FundID        string  `json:"fundId"`
	TotalQuotas   float64 `json:"totalQuotas"`
	TotalInvested float64 `json:"totalInvested"`
}

// HoldingPosition is a Holding joined with the fund metadata the
// performance calculator needs for quota lookups.
type HoldingPosition struct {
	Holding
	FundName string `json:"fundName"`
	FundCNPJ string `json:"fundCnpj"`
}
