// Package scenarios runs yaml-defined end-to-end simulation scenarios with
// synthetic price and solar series.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nemtools/bessim/core/model"
)

type BatteryDef struct {
	PowerMW      float64 `yaml:"power_mw"`
	EnergyMWh    float64 `yaml:"energy_mwh"`
	SocInitMWh   float64 `yaml:"soc_init_mwh"`
	SocMinMWh    float64 `yaml:"soc_min_mwh"`
	SocMaxMWh    float64 `yaml:"soc_max_mwh"`
	EtaCharge    float64 `yaml:"eta_charge"`
	EtaDischarge float64 `yaml:"eta_discharge"`
}

func (b BatteryDef) ToModel() model.Battery {
	return model.Battery{
		Name:         "scenario",
		PowerMW:      b.PowerMW,
		EnergyMWh:    b.EnergyMWh,
		SocInitMWh:   b.SocInitMWh,
		SocMinMWh:    b.SocMinMWh,
		SocMaxMWh:    b.SocMaxMWh,
		EtaCharge:    b.EtaCharge,
		EtaDischarge: b.EtaDischarge,
	}
}

type SolarDef struct {
	Enabled               bool      `yaml:"enabled"`
	CapacityMW            float64   `yaml:"capacity_mw"`
	Efficiency            float64   `yaml:"efficiency"`
	ExportEfficiency      float64   `yaml:"export_efficiency"`
	BidirectionalCharging bool      `yaml:"bidirectional_charging"`
	HourlyMW              []float64 `yaml:"hourly_mw"`
}

func (s SolarDef) ToModel() model.Solar {
	return model.Solar{
		Enabled:               s.Enabled,
		CapacityMW:            s.CapacityMW,
		Efficiency:            s.Efficiency,
		ExportEfficiency:      s.ExportEfficiency,
		BidirectionalCharging: s.BidirectionalCharging,
	}
}

type WindowsDef struct {
	ChargeStart    string `yaml:"charge_start"`
	ChargeEnd      string `yaml:"charge_end"`
	DischargeStart string `yaml:"discharge_start"`
	DischargeEnd   string `yaml:"discharge_end"`
}

func (w WindowsDef) ToModel() model.DispatchWindows {
	return model.DispatchWindows{
		ChargeStart:    w.ChargeStart,
		ChargeEnd:      w.ChargeEnd,
		DischargeStart: w.DischargeStart,
		DischargeEnd:   w.DischargeEnd,
	}
}

type Expected struct {
	ChargeMWh       float64 `yaml:"charge_mwh"`
	DischargeMWh    float64 `yaml:"discharge_mwh"`
	SolarExportMWh  float64 `yaml:"solar_export_mwh"`
	FinalSocMWh     float64 `yaml:"final_soc_mwh"`
	NetProfitAUD    float64 `yaml:"net_profit_aud"`
	RoundTrip       float64 `yaml:"round_trip_efficiency"`
	ToleranceAbs    float64 `yaml:"tolerance_abs"`
	CheckNetProfit  bool    `yaml:"check_net_profit"`
	CheckRoundTrip  bool    `yaml:"check_round_trip"`
	CheckSolarTotal bool    `yaml:"check_solar_total"`
}

type Scenario struct {
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description,omitempty"`
	Battery       BatteryDef `yaml:"battery"`
	Solar         SolarDef   `yaml:"solar"`
	Windows       WindowsDef `yaml:"windows"`
	ResolutionMin int        `yaml:"resolution_min"`
	Days          int        `yaml:"days"`
	FlatPrice     float64    `yaml:"flat_price"`
	Expected      Expected   `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
