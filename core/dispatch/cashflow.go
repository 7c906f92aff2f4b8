package dispatch

import (
	"time"

	"github.com/nemtools/bessim/core/model"
	"github.com/nemtools/bessim/core/window"
)

// cashflow converts one interval's flows into revenue, energy cost and
// network cost in AUD.
func cashflow(in Inputs, f Flows, tariffs model.Tariffs) (revenue, cost, network float64) {
	energyDischarge := f.DischargeMW * in.DtHours
	energySolarExport := f.SolarExportMW * in.DtHours
	energyGridCharge := f.GridChargeMW * in.DtHours

	revenue = (energyDischarge + energySolarExport) * in.PriceAUDPerMWh
	cost = energyGridCharge * in.PriceAUDPerMWh

	network = energyGridCharge*tariffs.Volume.ImportAUDPerMWh +
		(energyDischarge+energySolarExport)*tariffs.Volume.ExportAUDPerMWh

	if d := tariffs.Demand; d != nil && window.InWindow(in.Timestamp, d.WindowStart, d.WindowEnd) {
		peak := f.SolarChargeMW + f.GridChargeMW
		if f.DischargeMW > peak {
			peak = f.DischargeMW
		}
		network += peak * d.RateAUDPerKW * in.DtHours
	}
	return revenue, cost, network
}

// FixedCharges prorates the standing charge over the simulated period.
// Daily cadence bills every simulated day, both endpoints inclusive.
// Yearly cadence bills the annual amount times the fraction of the first
// simulated year covered, so a full leap year bills exactly the annual
// amount.
func FixedCharges(fixed model.FixedCharge, start, end time.Time) float64 {
	days := int(end.Sub(start).Hours()/24) + 1
	if fixed.Cadence == "yearly" {
		yearStart := time.Date(start.Year(), 1, 1, 0, 0, 0, 0, start.Location())
		yearEnd := time.Date(start.Year(), 12, 31, 0, 0, 0, 0, start.Location())
		yearDays := int(yearEnd.Sub(yearStart).Hours()/24) + 1
		return fixed.AmountAUD * float64(days) / float64(yearDays)
	}
	return fixed.AmountAUD * float64(days)
}
