package metrics

import (
	"context"
	"math"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nemtools/bessim/core/logger"
	coremetrics "github.com/nemtools/bessim/core/metrics"
	infralogger "github.com/nemtools/bessim/infra/logger"
)

// InfluxSink writes simulation runs to an InfluxDB instance using the
// official client: one point per interval record plus a summary point.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the run as line protocol points.
func (s *InfluxSink) RecordRun(rec coremetrics.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, iv := range rec.Intervals {
		p := write.NewPointWithMeasurement("bess_interval").
			AddTag("run_id", rec.RunID).
			AddTag("region", rec.Region).
			AddField("price", round3(iv.PriceAUDPerMWh)).
			AddField("solar_power_mw", round3(iv.SolarPowerMW)).
			AddField("charge_mw", round3(iv.ChargeMW)).
			AddField("discharge_mw", round3(iv.DischargeMW)).
			AddField("solar_export_mw", round3(iv.SolarExportMW)).
			AddField("soc_mwh", round3(iv.SocMWh)).
			AddField("revenue_aud", round3(iv.RevenueAUD)).
			AddField("cost_aud", round3(iv.CostAUD)).
			SetTime(iv.Timestamp)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}

	sum := write.NewPointWithMeasurement("bess_run").
		AddTag("run_id", rec.RunID).
		AddTag("region", rec.Region).
		AddField("total_charge_mwh", round3(rec.Summary.TotalChargeMWh)).
		AddField("total_discharge_mwh", round3(rec.Summary.TotalDischargeMWh)).
		AddField("net_profit_aud", round3(rec.Summary.NetProfitAUD)).
		AddField("round_trip_efficiency", round3(rec.Summary.RoundTripEfficiency)).
		AddField("intervals", rec.Summary.Intervals).
		SetTime(rec.CompletedAt)
	return s.writeAPI.WritePoint(ctx, sum)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
