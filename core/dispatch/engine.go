package dispatch

import (
	"fmt"
	"math"
	"time"

	"github.com/nemtools/bessim/core/logger"
	"github.com/nemtools/bessim/core/model"
	"github.com/nemtools/bessim/core/timeseries"
	"github.com/nemtools/bessim/core/window"
)

// Config collects the immutable inputs of one simulation run.
type Config struct {
	Battery       model.Battery
	Solar         model.Solar
	Windows       model.DispatchWindows
	Tariffs       model.Tariffs
	ResolutionMin int
}

// Validate checks the dispatch parameters before a run starts.
func (c Config) Validate() error {
	if c.ResolutionMin <= 0 {
		return fmt.Errorf("resolution must be positive, got %d", c.ResolutionMin)
	}
	if !c.Battery.SocBoundsValid() {
		return fmt.Errorf("battery %q: soc bounds [%.2f, %.2f] and initial %.2f are inconsistent",
			c.Battery.Name, c.Battery.SocMinMWh, c.Battery.SocMaxMWh, c.Battery.SocInitMWh)
	}
	if c.Battery.EtaCharge <= 0 || c.Battery.EtaCharge > 1 {
		return fmt.Errorf("eta_charge must be in (0,1], got %g", c.Battery.EtaCharge)
	}
	if c.Battery.EtaDischarge <= 0 || c.Battery.EtaDischarge > 1 {
		return fmt.Errorf("eta_discharge must be in (0,1], got %g", c.Battery.EtaDischarge)
	}
	return nil
}

// Result bundles the ordered interval records with the derived summary.
type Result struct {
	Intervals []model.IntervalRecord
	Summary   model.Summary
}

// Engine runs the sequential dispatch fold. It performs no I/O; price and
// solar series must be fully loaded and aligned before Run is called.
type Engine struct {
	cfg   Config
	rules []Rule
	log   logger.Logger
}

// New creates an Engine with the default rule order.
func New(cfg Config, log logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, rules: DefaultRules(), log: log}, nil
}

// Run folds the allocation rules over the price series in chronological
// order. solar may be empty, which disables the solar channels regardless
// of configuration; otherwise it must share the price index.
func (e *Engine) Run(prices, solar timeseries.Series) (*Result, error) {
	if prices.Len() == 0 {
		return nil, fmt.Errorf("empty price series")
	}
	if solar.Len() > 0 && solar.Len() != prices.Len() {
		return nil, fmt.Errorf("solar series length %d does not match price series length %d",
			solar.Len(), prices.Len())
	}

	dt := float64(e.cfg.ResolutionMin) / 60
	soc := e.cfg.Battery.SocInitMWh
	records := make([]model.IntervalRecord, 0, prices.Len())

	for i := 0; i < prices.Len(); i++ {
		ts, price := prices.At(i)
		solarMW := 0.0
		if solar.Len() > 0 {
			_, solarMW = solar.At(i)
		}
		if math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, fmt.Errorf("interval %s: invalid price %v", ts.Format(time.RFC3339), price)
		}

		in := Inputs{
			Timestamp:         ts,
			PriceAUDPerMWh:    price,
			SolarPowerMW:      solarMW,
			InChargeWindow:    window.InWindow(ts, e.cfg.Windows.ChargeStart, e.cfg.Windows.ChargeEnd),
			InDischargeWindow: window.InWindow(ts, e.cfg.Windows.DischargeStart, e.cfg.Windows.DischargeEnd),
			DtHours:           dt,
		}

		var flows Flows
		for _, r := range e.rules {
			soc = r.Apply(soc, in, e.cfg.Battery, e.cfg.Solar, &flows)
		}

		revenue, cost, network := cashflow(in, flows, e.cfg.Tariffs)
		records = append(records, model.IntervalRecord{
			Timestamp:            ts,
			PriceAUDPerMWh:       price,
			SolarPowerMW:         solarMW,
			ChargeMW:             flows.SolarChargeMW + flows.GridChargeMW,
			DischargeMW:          flows.DischargeMW,
			SolarChargeMW:        flows.SolarChargeMW,
			SolarExportMW:        flows.SolarExportMW,
			GridChargeMW:         flows.GridChargeMW,
			SocMWh:               soc,
			EnergyChargeMWh:      (flows.SolarChargeMW + flows.GridChargeMW) * dt,
			EnergyDischargeMWh:   flows.DischargeMW * dt,
			EnergySolarExportMWh: flows.SolarExportMW * dt,
			RevenueAUD:           revenue,
			CostAUD:              cost,
			NetworkCostAUD:       network,
		})
	}

	start, _ := prices.At(0)
	end, _ := prices.At(prices.Len() - 1)
	summary := Summarize(records, e.cfg, start, end)
	if e.log != nil {
		e.log.Debugw("run complete", map[string]any{
			"intervals":  summary.Intervals,
			"net_profit": summary.NetProfitAUD,
			"final_soc":  summary.FinalSocMWh,
		})
	}
	return &Result{Intervals: records, Summary: summary}, nil
}
