package request

// CreatePortfolioRequest represents the request body for creating a portfolio
type CreatePortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdatePortfolioRequest represents the request body for updating a portfolio.
// Nil fields are left unchanged.
type UpdatePortfolioRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsArchived  *bool   `json:"isArchived,omitempty"`
}

// CreateHoldingRequest represents the request body for adding a fund
// position to a portfolio.
type CreateHoldingRequest struct {
	FundID        string  `json:"fundId"`
	TotalQuotas   float64 `json:"totalQuotas"`
	TotalInvested float64 `json:"totalInvested"`
}

// UpdateHoldingRequest represents the request body for updating a holding's position.
type UpdateHoldingRequest struct {
	TotalQuotas   float64 `json:"totalQuotas"`
	TotalInvested float64 `json:"totalInvested"`
}
