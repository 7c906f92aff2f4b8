package scenarios

import (
	"math"
	"testing"
	"time"

	"github.com/nemtools/bessim/core/dispatch"
	"github.com/nemtools/bessim/core/model"
	"github.com/nemtools/bessim/core/timeseries"
	"github.com/nemtools/bessim/infra/logger"
)

// RunScenario builds synthetic price and solar series from the scenario
// definition, runs the dispatch engine and asserts the expected summary.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()

	engine, err := dispatch.New(dispatch.Config{
		Battery:       sc.Battery.ToModel(),
		Solar:         sc.Solar.ToModel(),
		Windows:       sc.Windows.ToModel(),
		Tariffs:       model.Tariffs{},
		ResolutionMin: sc.ResolutionMin,
	}, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	prices, solar := buildSeries(sc)
	res, err := engine.Run(prices, solar)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	tol := sc.Expected.ToleranceAbs
	if tol == 0 {
		tol = 1e-6
	}
	check := func(name string, got, want float64) {
		if math.Abs(got-want) > tol {
			t.Fatalf("%s: %s: got %.6f want %.6f", sc.Name, name, got, want)
		}
	}
	check("charge_mwh", res.Summary.TotalChargeMWh, sc.Expected.ChargeMWh)
	check("discharge_mwh", res.Summary.TotalDischargeMWh, sc.Expected.DischargeMWh)
	check("final_soc_mwh", res.Summary.FinalSocMWh, sc.Expected.FinalSocMWh)
	if sc.Expected.CheckSolarTotal {
		check("solar_export_mwh", res.Summary.TotalSolarExportMWh, sc.Expected.SolarExportMWh)
	}
	if sc.Expected.CheckNetProfit {
		check("net_profit_aud", res.Summary.NetProfitAUD, sc.Expected.NetProfitAUD)
	}
	if sc.Expected.CheckRoundTrip {
		check("round_trip_efficiency", res.Summary.RoundTripEfficiency, sc.Expected.RoundTrip)
	}
}

func buildSeries(sc *Scenario) (timeseries.Series, timeseries.Series) {
	days := sc.Days
	if days == 0 {
		days = 1
	}
	step := time.Duration(sc.ResolutionMin) * time.Minute
	perDay := int((24 * time.Hour) / step)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	n := days * perDay
	prices := timeseries.Series{Times: make([]time.Time, n), Values: make([]float64, n)}
	solar := timeseries.Series{}
	if sc.Solar.Enabled {
		solar = timeseries.Series{Times: make([]time.Time, n), Values: make([]float64, n)}
	}
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * step)
		prices.Times[i] = ts
		prices.Values[i] = sc.FlatPrice
		if sc.Solar.Enabled {
			solar.Times[i] = ts
			if len(sc.Solar.HourlyMW) == 24 {
				solar.Values[i] = sc.Solar.HourlyMW[ts.Hour()]
			}
		}
	}
	return prices, solar
}
