package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"fulfillment-invoicer/internal/core"
)

// TariffConfig is the on-disk tariff file.
type TariffConfig struct {
	Tariff     TariffRates      `toml:"tariff"`
	Protection ProtectionConfig `toml:"protection"`
}

type TariffRates struct {
	FirstSKUCost      float64 `toml:"first_sku_cost"`
	SubsequentSKUCost float64 `toml:"subsequent_sku_cost"`
	PerPieceCost      float64 `toml:"per_piece_cost"`
}

type ProtectionConfig struct {
	Labels []string `toml:"labels"`
}

func DefaultTariffConfig() TariffConfig {
	return TariffConfig{
		Tariff: TariffRates{
			FirstSKUCost:      1.50,
			SubsequentSKUCost: 0.75,
			PerPieceCost:      0.25,
		},
		Protection: ProtectionConfig{
			Labels: core.DefaultProtectionLabels,
		},
	}
}

// LoadTariff reads the tariff file at path. A missing file is not an error;
// the default rates apply. Sections absent from the file keep their defaults.
func LoadTariff(path string) (TariffConfig, error) {
	cfg := DefaultTariffConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode tariff %s: %w", path, err)
	}
	return cfg, nil
}

// Rates converts the configured float rates into the engine's decimal tariff.
func (c TariffConfig) Rates() core.Tariff {
	return core.Tariff{
		FirstSKUCost:      decimal.NewFromFloat(c.Tariff.FirstSKUCost),
		SubsequentSKUCost: decimal.NewFromFloat(c.Tariff.SubsequentSKUCost),
		PerPieceCost:      decimal.NewFromFloat(c.Tariff.PerPieceCost),
	}
}
