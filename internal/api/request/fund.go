package request

// CreateFundRequest represents the request body for registering a fund.
// CNPJ may be punctuated or bare digits; it is canonicalised on creation.
type CreateFundRequest struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
	Type string `json:"type"`
}
