package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Company.Name != "Rivulis Peru S.A.C." {
		t.Errorf("company name = %q", cfg.Company.Name)
	}
	if cfg.TaxRate != 0.18 {
		t.Errorf("tax rate = %v, want 0.18", cfg.TaxRate)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "company:\n  name: Acme Irrigation\ntax_rate: 0.1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Company.Name != "Acme Irrigation" {
		t.Errorf("company name = %q, want Acme Irrigation", cfg.Company.Name)
	}
	// Omitted fields keep their defaults.
	if cfg.Company.Website != "https://es.rivulis.com/" {
		t.Errorf("website = %q, want default", cfg.Company.Website)
	}
	if cfg.TaxRate != 0.1 {
		t.Errorf("tax rate = %v, want 0.1", cfg.TaxRate)
	}
}

func TestLoad_ZeroTaxRateFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("tax_rate: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TaxRate != 0.18 {
		t.Errorf("tax rate = %v, want 0.18", cfg.TaxRate)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("company: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
