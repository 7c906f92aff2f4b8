// Package export writes simulation results to CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/nemtools/bessim/core/model"
)

// WriteSummaryJSON writes the run summary to w in JSON format.
func WriteSummaryJSON(w io.Writer, s model.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteIntervalsJSON writes the interval records to w in JSON format.
func WriteIntervalsJSON(w io.Writer, records []model.IntervalRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteIntervalsCSV writes the interval records to w as CSV, one row per
// simulated interval.
func WriteIntervalsCSV(w io.Writer, records []model.IntervalRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"timestamp", "price", "solar_power_mw",
		"p_charge_mw", "p_discharge_mw", "p_solar_charge_mw", "p_solar_export_mw", "p_grid_charge_mw",
		"soc_mwh",
		"energy_charge_mwh", "energy_discharge_mwh", "energy_solar_export_mwh",
		"energy_revenue_aud", "energy_cost_aud", "network_cost_aud",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			r.Timestamp.Format(time.RFC3339),
			ftoa(r.PriceAUDPerMWh),
			ftoa(r.SolarPowerMW),
			ftoa(r.ChargeMW),
			ftoa(r.DischargeMW),
			ftoa(r.SolarChargeMW),
			ftoa(r.SolarExportMW),
			ftoa(r.GridChargeMW),
			ftoa(r.SocMWh),
			ftoa(r.EnergyChargeMWh),
			ftoa(r.EnergyDischargeMWh),
			ftoa(r.EnergySolarExportMWh),
			ftoa(r.RevenueAUD),
			ftoa(r.CostAUD),
			ftoa(r.NetworkCostAUD),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
