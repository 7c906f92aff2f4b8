package model

// Battery describes a grid-connected battery energy storage system. All
// power figures are MW and all energy figures MWh. Only the dispatch fields
// are consumed by the engine; the degradation, cycling and reserve fields
// exist so operator configs round-trip unchanged.
type Battery struct {
	Name       string  `json:"name"`
	PowerMW    float64 `json:"power_mw"`
	EnergyMWh  float64 `json:"energy_mwh"`
	SocInitMWh float64 `json:"soc_init_mwh"`
	SocMinMWh  float64 `json:"soc_min_mwh"`
	SocMaxMWh  float64 `json:"soc_max_mwh"`
	// EtaCharge and EtaDischarge are one-way conversion efficiencies in
	// (0,1]. Each is applied once, on its own leg of the round trip.
	EtaCharge    float64 `json:"eta_charge"`
	EtaDischarge float64 `json:"eta_discharge"`

	// Unused by the dispatch engine.
	DegradationPerCycle   float64  `json:"degradation_per_cycle"`
	DegradationPerYear    float64  `json:"degradation_per_year"`
	StandbyPowerKW        float64  `json:"standby_power_kw"`
	MaxCyclesPerDay       *float64 `json:"max_cycles_per_day,omitempty"`
	ReserveRequirementMWh float64  `json:"reserve_requirement_mwh"`
}

// SocBoundsValid reports whether the configured SOC levels are ordered and
// the initial SOC falls inside them.
func (b Battery) SocBoundsValid() bool {
	if b.SocMinMWh > b.SocMaxMWh || b.SocMaxMWh > b.EnergyMWh {
		return false
	}
	return b.SocInitMWh >= b.SocMinMWh && b.SocInitMWh <= b.SocMaxMWh
}

// Solar describes an optional co-located PV generator. When Enabled is
// false the simulator behaves as a standalone battery.
type Solar struct {
	Enabled           bool    `json:"enabled"`
	CapacityMW        float64 `json:"capacity_mw"`
	ProductionProfile string  `json:"production_profile"`
	// ProfileReferenceMW is the nameplate of the reference profile; loaded
	// values are scaled by CapacityMW/ProfileReferenceMW.
	ProfileReferenceMW float64 `json:"profile_reference_mw"`
	// Efficiency applies on the PV-to-battery leg, ExportEfficiency on the
	// PV-to-grid leg.
	Efficiency       float64 `json:"efficiency"`
	ExportEfficiency float64 `json:"export_efficiency"`
	// BidirectionalCharging permits grid charging in addition to PV
	// charging. When false the battery charges from solar only.
	BidirectionalCharging bool `json:"bidirectional_charging"`
}
