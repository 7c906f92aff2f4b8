// Package config loads the simulator configuration from YAML or JSON files
// with environment variable overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nemtools/bessim/core/metrics"
	"github.com/nemtools/bessim/core/model"
	"github.com/nemtools/bessim/infra/mqtt"
)

// Config is the root configuration of a simulation run.
type Config struct {
	Simulation SimulationConfig      `json:"simulation"`
	Battery    model.Battery         `json:"battery"`
	Market     model.Market          `json:"market"`
	Windows    model.DispatchWindows `json:"windows"`
	Tariffs    model.Tariffs         `json:"tariffs"`
	Solar      model.Solar           `json:"solar"`
	Data       DataConfig            `json:"data"`
	Output     OutputConfig          `json:"output"`
	Metrics    metrics.Config        `json:"metrics"`
	Publisher  mqtt.Config           `json:"publisher"`
}

// Load reads the configuration at path. The format follows the file
// extension; BESSIM_-prefixed environment variables override file values,
// with "__" as the key separator.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("BESSIM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "bessim_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Simulation.SetDefaults()
	c.Data.SetDefaults()
	c.Output.SetDefaults()
	c.Metrics.SetDefaults()
	c.Publisher.SetDefaults()
	if c.Market.PriceColumn == "" {
		c.Market.PriceColumn = "price_aud_per_mwh"
	}
	if c.Battery.EtaCharge == 0 {
		c.Battery.EtaCharge = 0.95
	}
	if c.Battery.EtaDischarge == 0 {
		c.Battery.EtaDischarge = 0.95
	}
	if c.Solar.Efficiency == 0 {
		c.Solar.Efficiency = 0.95
	}
	if c.Solar.ExportEfficiency == 0 {
		c.Solar.ExportEfficiency = 0.98
	}
	if c.Solar.ProfileReferenceMW == 0 {
		c.Solar.ProfileReferenceMW = 5.2
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if c.Market.Region == "" {
		return fmt.Errorf("market: region is required")
	}
	if floor, ceiling := c.Market.PriceFloor, c.Market.PriceCeiling; floor != nil && ceiling != nil && *ceiling < *floor {
		return fmt.Errorf("market: price_ceiling %g below price_floor %g", *ceiling, *floor)
	}
	if err := validateWindows(c.Windows); err != nil {
		return err
	}
	if err := validateTariffs(c.Tariffs); err != nil {
		return err
	}
	if c.Solar.Enabled && c.Solar.ProductionProfile == "" {
		return fmt.Errorf("solar: production_profile is required when enabled")
	}
	return nil
}

func validateWindows(w model.DispatchWindows) error {
	for _, hm := range []string{w.ChargeStart, w.ChargeEnd, w.DischargeStart, w.DischargeEnd} {
		if !validHHMM(hm) {
			return fmt.Errorf("windows: %q is not a valid HH:MM time", hm)
		}
	}
	return nil
}

func validateTariffs(t model.Tariffs) error {
	switch t.Fixed.Cadence {
	case "", "daily", "yearly":
	default:
		return fmt.Errorf("tariffs: unknown fixed cadence %q", t.Fixed.Cadence)
	}
	if d := t.Demand; d != nil {
		if !validHHMM(d.WindowStart) || !validHHMM(d.WindowEnd) {
			return fmt.Errorf("tariffs: demand window %q-%q is not valid HH:MM", d.WindowStart, d.WindowEnd)
		}
	}
	return nil
}

func validHHMM(hm string) bool {
	if len(hm) != 5 || hm[2] != ':' {
		return false
	}
	h := (int(hm[0]-'0') * 10) + int(hm[1]-'0')
	m := (int(hm[3]-'0') * 10) + int(hm[4]-'0')
	for _, c := range []byte{hm[0], hm[1], hm[3], hm[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return h < 24 && m < 60
}
