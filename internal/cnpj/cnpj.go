// Package cnpj handles normalisation and formatting of CNPJ registry
// numbers, the 14-digit national identifier every Brazilian investment
// fund is keyed by.
package cnpj

import (
	"fmt"
	"strings"
)

// Length is the number of digits in a CNPJ.
const Length = 14

// Normalize strips every non-digit character from a CNPJ, returning the
// bare 14-digit form used as a lookup key. Input may be punctuated
// ("12.345.678/0001-95"), bare ("12345678000195"), or anything in between.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(Length)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid reports whether the normalised form of raw is exactly 14 digits.
// It does not verify the check digits; the fund registry is the source of
// truth for which CNPJs exist.
func IsValid(raw string) bool {
	return len(Normalize(raw)) == Length
}

// Format renders a CNPJ in the canonical punctuated form
// XX.XXX.XXX/XXXX-XX. The input is normalised first, so both bare and
// already-punctuated values are accepted.
func Format(raw string) (string, error) {
	digits := Normalize(raw)
	if len(digits) != Length {
		return "", fmt.Errorf("invalid CNPJ %q: expected %d digits, got %d", raw, Length, len(digits))
	}
	return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14], nil
}
