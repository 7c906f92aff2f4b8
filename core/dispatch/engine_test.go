package dispatch

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/nemtools/bessim/core/model"
	"github.com/nemtools/bessim/core/timeseries"
)

func flatPrices(start time.Time, step time.Duration, n int, price float64) timeseries.Series {
	s := timeseries.Series{Times: make([]time.Time, n), Values: make([]float64, n)}
	for i := 0; i < n; i++ {
		s.Times[i] = start.Add(time.Duration(i) * step)
		s.Values[i] = price
	}
	return s
}

func dayConfig(bat model.Battery) Config {
	return Config{
		Battery: bat,
		Windows: model.DispatchWindows{
			ChargeStart: "10:30", ChargeEnd: "14:30",
			DischargeStart: "17:00", DischargeEnd: "21:00",
		},
		ResolutionMin: 60,
	}
}

func TestRunSingleAssetDay(t *testing.T) {
	engine, err := New(dayConfig(testBattery()), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	res, err := engine.Run(flatPrices(start, time.Hour, 24, 50), timeseries.Series{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var charging, discharging int
	for _, r := range res.Intervals {
		if r.GridChargeMW > 0 {
			charging++
		}
		if r.DischargeMW > 0 {
			discharging++
		}
	}
	if charging != 4 {
		t.Fatalf("charging intervals = %d, want 4", charging)
	}
	if discharging != 4 {
		t.Fatalf("discharging intervals = %d, want 4", discharging)
	}

	// SOC peaks at the cap then returns to the floor.
	if res.Intervals[14].SocMWh != 18 { // 14:00, last charge interval
		t.Fatalf("soc after charge window = %v, want 18", res.Intervals[14].SocMWh)
	}
	if res.Summary.FinalSocMWh != 2 {
		t.Fatalf("final soc = %v, want 2", res.Summary.FinalSocMWh)
	}
	if math.Abs(res.Summary.TotalChargeMWh-16) > 1e-9 || math.Abs(res.Summary.TotalDischargeMWh-16) > 1e-9 {
		t.Fatalf("energy totals %v / %v, want 16 / 16",
			res.Summary.TotalChargeMWh, res.Summary.TotalDischargeMWh)
	}
	if math.Abs(res.Summary.RevenueAUD-800) > 1e-9 || math.Abs(res.Summary.CostAUD-800) > 1e-9 {
		t.Fatalf("revenue %v cost %v, want 800 both", res.Summary.RevenueAUD, res.Summary.CostAUD)
	}
	if res.Summary.RoundTripEfficiency != 1 {
		t.Fatalf("round trip = %v, want 1", res.Summary.RoundTripEfficiency)
	}
}

func TestRunSocStaysWithinBounds(t *testing.T) {
	bat := testBattery()
	bat.EtaCharge = 0.95
	bat.EtaDischarge = 0.9
	engine, err := New(dayConfig(bat), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	res, err := engine.Run(flatPrices(start, time.Hour, 24*7, 80), timeseries.Series{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, r := range res.Intervals {
		if r.SocMWh < bat.SocMinMWh-1e-12 || r.SocMWh > bat.SocMaxMWh+1e-12 {
			t.Fatalf("soc %v out of [%v, %v] at %s", r.SocMWh, bat.SocMinMWh, bat.SocMaxMWh, r.Timestamp)
		}
	}
}

func TestRunEnergyConservationPerInterval(t *testing.T) {
	bat := testBattery()
	bat.EtaCharge = 0.9
	bat.EtaDischarge = 0.85
	engine, err := New(dayConfig(bat), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	res, err := engine.Run(flatPrices(start, time.Hour, 48, 65), timeseries.Series{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	soc := bat.SocInitMWh
	for _, r := range res.Intervals {
		want := soc + r.GridChargeMW*1*bat.EtaCharge - r.DischargeMW*1/bat.EtaDischarge
		if want < bat.SocMinMWh {
			want = bat.SocMinMWh
		}
		if want > bat.SocMaxMWh {
			want = bat.SocMaxMWh
		}
		if math.Abs(r.SocMWh-want) > 1e-9 {
			t.Fatalf("%s: soc %v, want %v", r.Timestamp, r.SocMWh, want)
		}
		soc = r.SocMWh
	}
}

func TestRunRejectsInvalidPrice(t *testing.T) {
	engine, err := New(dayConfig(testBattery()), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	prices := flatPrices(start, time.Hour, 3, 50)
	prices.Values[1] = math.NaN()
	_, err = engine.Run(prices, timeseries.Series{})
	if err == nil {
		t.Fatalf("expected error for NaN price")
	}
	if !strings.Contains(err.Error(), "2024-03-01T01:00:00") {
		t.Fatalf("error should name the offending timestamp, got %v", err)
	}
}

func TestRunRejectsEmptySeries(t *testing.T) {
	engine, err := New(dayConfig(testBattery()), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if _, err := engine.Run(timeseries.Series{}, timeseries.Series{}); err == nil {
		t.Fatalf("expected error for empty series")
	}
}

func TestRunRejectsMismatchedSolar(t *testing.T) {
	engine, err := New(dayConfig(testBattery()), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	prices := flatPrices(start, time.Hour, 24, 50)
	solar := flatPrices(start, time.Hour, 12, 1)
	if _, err := engine.Run(prices, solar); err == nil {
		t.Fatalf("expected error for mismatched solar series")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	bad := testBattery()
	bad.SocInitMWh = 30 // above max
	if _, err := New(dayConfig(bad), nil); err == nil {
		t.Fatalf("expected error for invalid soc bounds")
	}
	zeroEta := testBattery()
	zeroEta.EtaDischarge = 0
	if _, err := New(dayConfig(zeroEta), nil); err == nil {
		t.Fatalf("expected error for zero efficiency")
	}
	cfg := dayConfig(testBattery())
	cfg.ResolutionMin = 0
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for zero resolution")
	}
}
