package dispatch

import (
	"time"

	"github.com/nemtools/bessim/core/model"
)

// Inputs carries everything a rule may read for one interval.
type Inputs struct {
	Timestamp         time.Time
	PriceAUDPerMWh    float64
	SolarPowerMW      float64
	InChargeWindow    bool
	InDischargeWindow bool
	// DtHours is the interval length in hours.
	DtHours float64
}

// Flows holds the per-interval power allocations. All channels are
// non-negative MW; direction is the channel, not the sign.
type Flows struct {
	SolarChargeMW float64
	SolarExportMW float64
	GridChargeMW  float64
	DischargeMW   float64
}

// Rule advances the SOC and fills its flow channel for one interval. Rules
// are pure: the only state is the SOC value passed in and returned.
type Rule struct {
	Name  string
	Apply func(soc float64, in Inputs, bat model.Battery, sol model.Solar, f *Flows) float64
}

// DefaultRules returns the allocation rules in priority order: solar
// self-consumption, solar export, grid charge, discharge, clamp. The order
// is the contract; it also resolves overlapping charge and discharge
// windows.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "solar_charge", Apply: solarCharge},
		{Name: "solar_export", Apply: solarExport},
		{Name: "grid_charge", Apply: gridCharge},
		{Name: "discharge", Apply: discharge},
		{Name: "clamp", Apply: clampSoc},
	}
}

func solarCharge(soc float64, in Inputs, bat model.Battery, sol model.Solar, f *Flows) float64 {
	if !sol.Enabled || in.SolarPowerMW <= 0 {
		return soc
	}
	if !in.InChargeWindow || soc >= bat.SocMaxMWh {
		return soc
	}
	p := min3(bat.PowerMW, (bat.SocMaxMWh-soc)/in.DtHours, in.SolarPowerMW)
	f.SolarChargeMW = p
	return soc + p*in.DtHours*sol.Efficiency
}

func solarExport(soc float64, in Inputs, bat model.Battery, sol model.Solar, f *Flows) float64 {
	if !sol.Enabled || in.SolarPowerMW <= 0 {
		return soc
	}
	if remaining := in.SolarPowerMW - f.SolarChargeMW; remaining > 0 {
		f.SolarExportMW = remaining * sol.ExportEfficiency
	}
	return soc
}

// gridCharge evaluates its power limit against the SOC as left by the solar
// rule but does not subtract the solar power already allocated, so the two
// charging channels can jointly exceed the battery nameplate within one
// interval. Known modeling simplification, kept deliberately.
func gridCharge(soc float64, in Inputs, bat model.Battery, sol model.Solar, f *Flows) float64 {
	if sol.Enabled && !sol.BidirectionalCharging {
		return soc
	}
	if !in.InChargeWindow || soc >= bat.SocMaxMWh {
		return soc
	}
	p := bat.PowerMW
	if headroom := (bat.SocMaxMWh - soc) / in.DtHours; headroom < p {
		p = headroom
	}
	f.GridChargeMW = p
	return soc + p*in.DtHours*bat.EtaCharge
}

// discharge caps power so the delivered energy never draws SOC below the
// floor: usable energy is (soc-min)*eta, and the SOC debit is grossed back
// up by 1/eta.
func discharge(soc float64, in Inputs, bat model.Battery, _ model.Solar, f *Flows) float64 {
	if !in.InDischargeWindow || soc <= bat.SocMinMWh {
		return soc
	}
	usable := (soc - bat.SocMinMWh) * bat.EtaDischarge
	p := bat.PowerMW
	if maxP := usable / in.DtHours; maxP < p {
		p = maxP
	}
	f.DischargeMW = p
	return soc - p*in.DtHours/bat.EtaDischarge
}

// clampSoc is a safety net against floating-point drift; the preceding
// rules already respect the bounds arithmetically.
func clampSoc(soc float64, _ Inputs, bat model.Battery, _ model.Solar, _ *Flows) float64 {
	if soc < bat.SocMinMWh {
		return bat.SocMinMWh
	}
	if soc > bat.SocMaxMWh {
		return bat.SocMaxMWh
	}
	return soc
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
