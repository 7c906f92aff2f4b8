// Package app wires configuration, data store, dispatch engine and
// observability sinks into a runnable service.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nemtools/bessim/config"
	"github.com/nemtools/bessim/core/dispatch"
	"github.com/nemtools/bessim/core/logger"
	coremetrics "github.com/nemtools/bessim/core/metrics"
	"github.com/nemtools/bessim/core/sim"
	infralogger "github.com/nemtools/bessim/infra/logger"
	"github.com/nemtools/bessim/infra/metrics"
	"github.com/nemtools/bessim/infra/mqtt"
	"github.com/nemtools/bessim/infra/store"
	"github.com/nemtools/bessim/internal/eventbus"
	"github.com/nemtools/bessim/pkg/export"
)

// Service runs one configured simulation and fans the result out to the
// configured sinks and export files.
type Service struct {
	cfg    *config.Config
	runner *sim.Runner
	sink   coremetrics.Sink
	bus    *eventbus.Bus[coremetrics.RunRecord]
	log    logger.Logger

	publisher   *mqtt.Publisher
	influx      *metrics.InfluxSink
	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.New("service")

	st, err := store.New(cfg.Data.Dir, infralogger.New("store"))
	if err != nil {
		return nil, fmt.Errorf("data store: %w", err)
	}

	svc := &Service{
		cfg:    cfg,
		runner: &sim.Runner{Prices: st, Solar: st, Log: infralogger.New("sim")},
		bus:    eventbus.New[coremetrics.RunRecord](),
		log:    logg,
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		promSink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, promSink)
		svc.promEnabled = true
		svc.promAddr = cfg.Metrics.PrometheusAddr
	}
	if cfg.Metrics.InfluxEnabled {
		influxSink := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if is, ok := influxSink.(*metrics.InfluxSink); ok {
			svc.influx = is
		}
		sinks = append(sinks, influxSink)
	}
	if cfg.Publisher.Enabled {
		pub, err := mqtt.NewPublisher(cfg.Publisher)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
		sinks = append(sinks, pub)
	}
	switch len(sinks) {
	case 0:
		svc.sink = coremetrics.NopSink{}
	case 1:
		svc.sink = sinks[0]
	default:
		svc.sink = coremetrics.NewMultiSink(sinks...)
	}
	return svc, nil
}

// Run executes the configured simulation, records it on the sinks and
// writes the export files. It returns once everything is flushed.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	sub := s.bus.Subscribe()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for rec := range sub {
			if err := s.sink.RecordRun(rec); err != nil {
				s.log.Errorf("record run: %v", err)
			}
		}
	}()

	start, end := s.cfg.Simulation.Period()
	result, err := s.runner.Run(sim.Params{
		Start:         start,
		End:           end.Add(23*time.Hour + 55*time.Minute),
		ResolutionMin: s.cfg.Simulation.ResolutionMin,
		Market:        s.cfg.Market,
		Battery:       s.cfg.Battery,
		Solar:         s.cfg.Solar,
		Windows:       s.cfg.Windows,
		Tariffs:       s.cfg.Tariffs,
	})
	if err != nil {
		s.bus.Close()
		wg.Wait()
		return err
	}

	s.log.Infof("run %s: %d intervals, net profit %.2f AUD",
		result.Summary.RunID, result.Summary.Intervals, result.Summary.NetProfitAUD)

	s.bus.Publish(coremetrics.RunRecord{
		RunID:       result.Summary.RunID,
		Region:      s.cfg.Market.Region,
		Start:       start,
		End:         end,
		Summary:     result.Summary,
		Intervals:   result.Intervals,
		CompletedAt: time.Now(),
	})
	s.bus.Close()
	wg.Wait()

	return s.export(result)
}

func (s *Service) export(result *dispatch.Result) error {
	out := s.cfg.Output
	now := time.Now()
	if out.WriteCSV {
		path, err := export.TimestampedPath(out.Dir, "intervals", "csv", now)
		if err != nil {
			return err
		}
		if err := writeFile(path, func(f *os.File) error {
			return export.WriteIntervalsCSV(f, result.Intervals)
		}); err != nil {
			return err
		}
		s.log.Infof("wrote %s", path)
	}
	if out.WriteJSON {
		path, err := export.TimestampedPath(out.Dir, "summary", "json", now)
		if err != nil {
			return err
		}
		if err := writeFile(path, func(f *os.File) error {
			return export.WriteSummaryJSON(f, result.Summary)
		}); err != nil {
			return err
		}
		s.log.Infof("wrote %s", path)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.influx != nil {
		s.influx.Close()
	}
	return nil
}
