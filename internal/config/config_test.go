package config_test

import (
	"testing"

	"github.com/gcoelho/carteira-manager-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Server.Addr != "localhost:5001" {
		t.Errorf("Expected default addr localhost:5001, got %q", cfg.Server.Addr)
	}
	if cfg.Import.MonthsBack != 2 {
		t.Errorf("Expected default of 2 months back, got %d", cfg.Import.MonthsBack)
	}
	if cfg.Import.FetchTimeoutSeconds != 60 {
		t.Errorf("Expected default fetch timeout of 60s, got %d", cfg.Import.FetchTimeoutSeconds)
	}
	if !cfg.Scheduler.Enabled {
		t.Error("Expected scheduler enabled by default")
	}
	if cfg.Scheduler.ImportSpec != "0 6 * * *" {
		t.Errorf("Unexpected default import cron spec %q", cfg.Scheduler.ImportSpec)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CVM_MONTHS_BACK", "5")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("CVM_BASE_URL", "http://localhost:9999/dados")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Expected addr 0.0.0.0:8080, got %q", cfg.Server.Addr)
	}
	if cfg.Import.MonthsBack != 5 {
		t.Errorf("Expected 5 months back, got %d", cfg.Import.MonthsBack)
	}
	if cfg.Scheduler.Enabled {
		t.Error("Expected scheduler disabled")
	}
	if cfg.Import.BaseURL != "http://localhost:9999/dados" {
		t.Errorf("Unexpected base URL %q", cfg.Import.BaseURL)
	}
}

func TestLoad_RejectsNegativeWindow(t *testing.T) {
	t.Setenv("CVM_MONTHS_BACK", "-1")

	if _, err := config.Load(); err == nil {
		t.Error("Expected error for negative CVM_MONTHS_BACK, got nil")
	}
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CVM_MONTHS_BACK", "many")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Import.MonthsBack != 2 {
		t.Errorf("Expected fallback to default 2, got %d", cfg.Import.MonthsBack)
	}
}
