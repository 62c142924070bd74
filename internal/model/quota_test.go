package model_test

import (
	"testing"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/model"
)

func TestNewQuotaValue(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("builds valid value in UTC", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		q, err := model.NewQuotaValue("12.345.678/0001-95", date.In(loc), 100.50, "cvm-inf-diario")

		if err != nil {
			t.Fatalf("NewQuotaValue() returned unexpected error: %v", err)
		}
		if q.Date.Location() != time.UTC {
			t.Errorf("Expected UTC date, got %v", q.Date.Location())
		}
		if q.Value != 100.50 {
			t.Errorf("Expected value 100.50, got %v", q.Value)
		}
	})

	tests := []struct {
		name  string
		cnpj  string
		date  time.Time
		value float64
	}{
		{"empty CNPJ", "", date, 100},
		{"zero date", "12.345.678/0001-95", time.Time{}, 100},
		{"zero value", "12.345.678/0001-95", date, 0},
		{"negative value", "12.345.678/0001-95", date, -1},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			if _, err := model.NewQuotaValue(tt.cnpj, tt.date, tt.value, "cvm-inf-diario"); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
