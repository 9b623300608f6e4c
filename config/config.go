// Package config loads the service configuration: the vendor identity
// shown on reports and the tax rate applied to quotations.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Company identifies the vendor issuing quotations.
type Company struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Website string `yaml:"website"`
	Logo    string `yaml:"logo"`
}

// Config is the full service configuration.
type Config struct {
	Company Company `yaml:"company"`
	TaxRate float64 `yaml:"tax_rate"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Company: Company{
			Name:    "Rivulis Peru S.A.C.",
			Address: "Av. Primavera Nro. 517 Int. 206",
			Website: "https://es.rivulis.com/",
		},
		TaxRate: 0.18,
	}
}

// Load reads a YAML configuration file, filling omitted fields from the
// defaults. A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TaxRate <= 0 {
		cfg.TaxRate = Default().TaxRate
	}
	return cfg, nil
}
