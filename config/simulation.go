package config

import (
	"fmt"
	"time"
)

// SimulationConfig defines the simulated period and time resolution.
type SimulationConfig struct {
	// Start and End are inclusive dates in YYYY-MM-DD.
	Start string `json:"start"`
	End   string `json:"end"`
	// ResolutionMin is the dispatch interval length in minutes. Must be a
	// multiple of the native five-minute data resolution.
	ResolutionMin int `json:"resolution_min"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.ResolutionMin == 0 {
		c.ResolutionMin = 5
	}
}

// Validate checks mandatory fields.
func (c SimulationConfig) Validate() error {
	start, err := time.Parse(time.DateOnly, c.Start)
	if err != nil {
		return fmt.Errorf("simulation: start: %w", err)
	}
	end, err := time.Parse(time.DateOnly, c.End)
	if err != nil {
		return fmt.Errorf("simulation: end: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("simulation: end %s precedes start %s", c.End, c.Start)
	}
	if c.ResolutionMin < 5 || c.ResolutionMin%5 != 0 {
		return fmt.Errorf("simulation: resolution_min %d must be a multiple of 5", c.ResolutionMin)
	}
	return nil
}

// Period returns the parsed start and end dates. Validate must have
// succeeded.
func (c SimulationConfig) Period() (time.Time, time.Time) {
	start, _ := time.Parse(time.DateOnly, c.Start)
	end, _ := time.Parse(time.DateOnly, c.End)
	return start, end
}

// DataConfig locates the organized data store.
type DataConfig struct {
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *DataConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "data/organized"
	}
}

// OutputConfig controls result export.
type OutputConfig struct {
	Dir       string `json:"dir"`
	WriteCSV  bool   `json:"write_csv"`
	WriteJSON bool   `json:"write_json"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "outputs/bessim"
	}
}
