package validation

import (
	"fmt"
	"strings"

	"github.com/gcoelho/carteira-manager-backend/internal/api/request"
	"github.com/gcoelho/carteira-manager-backend/internal/cnpj"
)

// Error aggregates per-field validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateCreateFund checks a fund registration request.
func ValidateCreateFund(req request.CreateFundRequest) error {
	fields := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if !cnpj.IsValid(req.CNPJ) {
		fields["cnpj"] = "must be a 14-digit CNPJ"
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}
