// Package sim orchestrates one simulation run: it loads and prepares the
// price and solar series, then hands them to the dispatch engine. All I/O
// happens here, before the dispatch loop starts.
package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nemtools/bessim/core/dispatch"
	"github.com/nemtools/bessim/core/logger"
	"github.com/nemtools/bessim/core/marketdata"
	"github.com/nemtools/bessim/core/model"
	"github.com/nemtools/bessim/core/timeseries"
)

// NativeResolutionMin is the resolution of the stored price data.
const NativeResolutionMin = 5

// Params describes a full simulation scenario.
type Params struct {
	Start         time.Time
	End           time.Time
	ResolutionMin int
	Market        model.Market
	Battery       model.Battery
	Solar         model.Solar
	Windows       model.DispatchWindows
	Tariffs       model.Tariffs
}

// Runner executes simulations against a pair of data providers.
type Runner struct {
	Prices marketdata.PriceProvider
	Solar  marketdata.SolarProvider
	Log    logger.Logger
}

// Run performs one simulation. Missing price data or a missing price column
// abort the run; a missing solar profile degrades to zero generation with a
// warning.
func (r *Runner) Run(p Params) (*dispatch.Result, error) {
	frame, err := r.Prices.Prices(p.Market.Region, p.Start, p.End)
	if err != nil {
		return nil, err
	}

	raw, ok := frame.Column(p.Market.PriceColumn)
	if !ok {
		return nil, fmt.Errorf("region %s: column %q: %w",
			p.Market.Region, p.Market.PriceColumn, marketdata.ErrPriceColumn)
	}
	clipped := make([]float64, raw.Len())
	copy(clipped, raw.Values)
	frame.SetColumn("price", clipped)
	if p.Market.PriceFloor != nil || p.Market.PriceCeiling != nil {
		floor, ceiling := math.Inf(-1), math.Inf(1)
		if p.Market.PriceFloor != nil {
			floor = *p.Market.PriceFloor
		}
		if p.Market.PriceCeiling != nil {
			ceiling = *p.Market.PriceCeiling
		}
		prices, _ := frame.Column("price")
		prices.Clip(floor, ceiling)
	}

	if p.ResolutionMin != NativeResolutionMin {
		frame = frame.Resample(time.Duration(p.ResolutionMin) * time.Minute)
	}
	prices, _ := frame.Column("price")

	solar, err := r.loadSolar(p, frame.Times)
	if err != nil {
		return nil, err
	}

	engine, err := dispatch.New(dispatch.Config{
		Battery:       p.Battery,
		Solar:         p.Solar,
		Windows:       p.Windows,
		Tariffs:       p.Tariffs,
		ResolutionMin: p.ResolutionMin,
	}, r.Log)
	if err != nil {
		return nil, err
	}
	result, err := engine.Run(prices, solar)
	if err != nil {
		return nil, err
	}
	result.Summary.RunID = uuid.NewString()
	return result, nil
}

// loadSolar returns the production series aligned onto the market index, or
// an empty series when solar is disabled.
func (r *Runner) loadSolar(p Params, index []time.Time) (timeseries.Series, error) {
	if !p.Solar.Enabled {
		return timeseries.Series{}, nil
	}
	profile, err := r.Solar.Profile(p.Solar.ProductionProfile, p.Start, p.End)
	if err != nil {
		if !errors.Is(err, marketdata.ErrSolarProfileNotFound) {
			return timeseries.Series{}, err
		}
		if r.Log != nil {
			r.Log.Warnf("solar profile %s not found, using zero generation", p.Solar.ProductionProfile)
		}
		profile = timeseries.Series{}
	}
	if ref := p.Solar.ProfileReferenceMW; ref > 0 {
		profile.Scale(p.Solar.CapacityMW / ref)
	}
	return profile.AlignForwardFill(index), nil
}
