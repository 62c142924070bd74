package validation

import (
	"strings"

	"github.com/gcoelho/carteira-manager-backend/internal/api/request"
)

// ValidateCreatePortfolio checks a portfolio creation request.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	fields := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

// ValidateCreateHolding checks a holding creation request.
func ValidateCreateHolding(req request.CreateHoldingRequest) error {
	fields := map[string]string{}

	if err := ValidateUUID(req.FundID); err != nil {
		fields["fundId"] = "must be a valid UUID"
	}
	if req.TotalQuotas < 0 {
		fields["totalQuotas"] = "cannot be negative"
	}
	if req.TotalInvested < 0 {
		fields["totalInvested"] = "cannot be negative"
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}
