package cnpj_test

import (
	"testing"

	"github.com/gcoelho/carteira-manager-backend/internal/cnpj"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuated form", "12.345.678/0001-95", "12345678000195"},
		{"bare digits pass through", "12345678000195", "12345678000195"},
		{"mixed garbage stripped", " 12a.345b678/0001--95 ", "12345678000195"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cnpj.Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Run("formats bare digits to canonical form", func(t *testing.T) {
		got, err := cnpj.Format("12345678000195")
		if err != nil {
			t.Fatalf("Format returned unexpected error: %v", err)
		}
		if got != "12.345.678/0001-95" {
			t.Errorf("Expected '12.345.678/0001-95', got %q", got)
		}
	})

	t.Run("canonical form round-trips", func(t *testing.T) {
		got, err := cnpj.Format("12.345.678/0001-95")
		if err != nil {
			t.Fatalf("Format returned unexpected error: %v", err)
		}
		if got != "12.345.678/0001-95" {
			t.Errorf("Expected round-trip to be stable, got %q", got)
		}
	})

	t.Run("rejects wrong digit count", func(t *testing.T) {
		if _, err := cnpj.Format("1234567800019"); err == nil {
			t.Error("Expected error for 13-digit input, got nil")
		}
		if _, err := cnpj.Format(""); err == nil {
			t.Error("Expected error for empty input, got nil")
		}
	})
}

func TestIsValid(t *testing.T) {
	if !cnpj.IsValid("12.345.678/0001-95") {
		t.Error("Expected punctuated 14-digit CNPJ to be valid")
	}
	if cnpj.IsValid("12.345.678/0001") {
		t.Error("Expected short CNPJ to be invalid")
	}
}
