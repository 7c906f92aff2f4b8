package dispatch

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/nemtools/bessim/core/model"
)

// Summarize derives the scalar run summary from the interval records.
// Fixed charges are prorated over [start, end] and folded into the network
// cost. Round-trip efficiency is battery-only (discharge over charge);
// CombinedExportRatio adds solar export to both terms.
func Summarize(records []model.IntervalRecord, cfg Config, start, end time.Time) model.Summary {
	var s model.Summary
	s.Intervals = len(records)
	s.InitialSocMWh = cfg.Battery.SocInitMWh
	s.SolarEnabled = cfg.Solar.Enabled
	if cfg.Solar.Enabled {
		s.SolarCapacityMW = cfg.Solar.CapacityMW
		s.BidirectionalCharging = cfg.Solar.BidirectionalCharging
	}
	if len(records) == 0 {
		return s
	}
	s.FinalSocMWh = records[len(records)-1].SocMWh

	var importPrices, exportPrices, solarPrices, allPrices []float64
	for _, r := range records {
		s.TotalChargeMWh += r.EnergyChargeMWh
		s.TotalDischargeMWh += r.EnergyDischargeMWh
		s.TotalSolarExportMWh += r.EnergySolarExportMWh
		s.RevenueAUD += r.RevenueAUD
		s.CostAUD += r.CostAUD
		s.NetworkCostAUD += r.NetworkCostAUD

		allPrices = append(allPrices, r.PriceAUDPerMWh)
		if r.ChargeMW > 0 {
			importPrices = append(importPrices, r.PriceAUDPerMWh)
		}
		if r.DischargeMW > 0 {
			exportPrices = append(exportPrices, r.PriceAUDPerMWh)
		}
		if r.SolarExportMW > 0 {
			solarPrices = append(solarPrices, r.PriceAUDPerMWh)
		}
	}

	if s.TotalChargeMWh > 0 {
		s.RoundTripEfficiency = s.TotalDischargeMWh / s.TotalChargeMWh
	}
	if combined := s.TotalChargeMWh + s.TotalSolarExportMWh; combined > 0 {
		s.CombinedExportRatio = (s.TotalDischargeMWh + s.TotalSolarExportMWh) / combined
	}

	s.AvgPrice = stat.Mean(allPrices, nil)
	s.AvgImportPrice = meanOrZero(importPrices)
	s.AvgExportPrice = meanOrZero(exportPrices)
	s.AvgSolarExportPrice = meanOrZero(solarPrices)

	s.NetworkCostAUD += FixedCharges(cfg.Tariffs.Fixed, start, end)
	s.GrossProfitAUD = s.RevenueAUD - s.CostAUD
	s.NetProfitAUD = s.GrossProfitAUD - s.NetworkCostAUD
	return s
}

func meanOrZero(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}
