// Package marketdata defines the contracts the simulation engine consumes
// for historical price and solar production data. Implementations live
// under infra.
package marketdata

import (
	"errors"
	"time"

	"github.com/nemtools/bessim/core/timeseries"
)

// ErrDataNotFound indicates the backing price data for a region or period
// does not exist. Fatal: the run aborts before dispatch starts.
var ErrDataNotFound = errors.New("market data not found")

// ErrPriceColumn indicates the configured price column is absent from the
// retrieved data. Fatal: the run aborts before dispatch starts.
var ErrPriceColumn = errors.New("price column not found")

// ErrSolarProfileNotFound indicates the named solar profile has no backing
// data. Non-fatal: the hybrid engine substitutes zero generation.
var ErrSolarProfileNotFound = errors.New("solar profile not found")

// PriceProvider returns wholesale prices for a region at the store's native
// five-minute resolution, covering [start, end] inclusive.
type PriceProvider interface {
	Prices(region string, start, end time.Time) (*timeseries.Frame, error)
}

// SolarProvider synthesizes an hourly production series for the named
// profile over [start, end] by mapping day-of-year and hour-of-day from a
// single reference year onto every simulated day. Hours without reference
// data (night) are zero.
type SolarProvider interface {
	Profile(name string, start, end time.Time) (timeseries.Series, error)
}
