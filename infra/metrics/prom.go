package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/nemtools/bessim/core/metrics"
)

// PromSink exposes simulation run aggregates as Prometheus metrics.
type PromSink struct {
	runs      *prometheus.CounterVec
	energy    *prometheus.CounterVec
	profit    *prometheus.GaugeVec
	finalSoc  *prometheus.GaugeVec
	intervals *prometheus.GaugeVec
}

// NewPromSink registers run metrics on the provided registerer. If reg is
// nil, the default registerer is used. Already registered collectors are
// reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bessim_runs_total",
		Help: "Total number of completed simulation runs",
	}, []string{"region"})
	energy := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bessim_energy_mwh_total",
		Help: "Simulated energy by channel in MWh",
	}, []string{"region", "channel"})
	profit := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bessim_net_profit_aud",
		Help: "Net profit of the most recent run in AUD",
	}, []string{"region"})
	finalSoc := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bessim_final_soc_mwh",
		Help: "Final state of charge of the most recent run in MWh",
	}, []string{"region"})
	intervals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bessim_run_intervals",
		Help: "Interval count of the most recent run",
	}, []string{"region"})

	for _, c := range []prometheus.Collector{runs, energy, profit, finalSoc, intervals} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return &PromSink{runs: runs, energy: energy, profit: profit, finalSoc: finalSoc, intervals: intervals}, nil
}

// RecordRun updates the run metrics from the summary.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.runs.WithLabelValues(rec.Region).Inc()
	s.energy.WithLabelValues(rec.Region, "charge").Add(rec.Summary.TotalChargeMWh)
	s.energy.WithLabelValues(rec.Region, "discharge").Add(rec.Summary.TotalDischargeMWh)
	s.energy.WithLabelValues(rec.Region, "solar_export").Add(rec.Summary.TotalSolarExportMWh)
	s.profit.WithLabelValues(rec.Region).Set(rec.Summary.NetProfitAUD)
	s.finalSoc.WithLabelValues(rec.Region).Set(rec.Summary.FinalSocMWh)
	s.intervals.WithLabelValues(rec.Region).Set(float64(rec.Summary.Intervals))
	return nil
}
