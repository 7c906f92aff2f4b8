package timeseries

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Frame is a time-indexed table of named numeric columns sharing one index.
type Frame struct {
	Times   []time.Time
	Columns map[string][]float64
}

// NewFrame creates an empty frame over the given index.
func NewFrame(times []time.Time) *Frame {
	return &Frame{Times: times, Columns: make(map[string][]float64)}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Times) }

// Column returns the named column as a Series sharing the frame's index.
func (f *Frame) Column(name string) (Series, bool) {
	vals, ok := f.Columns[name]
	if !ok {
		return Series{}, false
	}
	return Series{Times: f.Times, Values: vals}, true
}

// SetColumn stores vals under name. The slice length must match the index.
func (f *Frame) SetColumn(name string, vals []float64) {
	f.Columns[name] = vals
}

// Resample downsamples every column by arithmetic mean over buckets of the
// given width. Bucket boundaries are aligned by truncating timestamps to
// the interval, so 5-minute rows fold cleanly into 30- or 60-minute rows.
// Upsampling is not supported; intervals at or below the native spacing
// return the frame unchanged.
func (f *Frame) Resample(interval time.Duration) *Frame {
	if f.Len() == 0 {
		return f
	}
	if f.Len() > 1 && interval <= f.Times[1].Sub(f.Times[0]) {
		return f
	}

	var bucketTimes []time.Time
	var bounds []int
	for i, t := range f.Times {
		b := t.Truncate(interval)
		if len(bucketTimes) == 0 || !b.Equal(bucketTimes[len(bucketTimes)-1]) {
			bucketTimes = append(bucketTimes, b)
			bounds = append(bounds, i)
		}
	}
	bounds = append(bounds, f.Len())

	out := NewFrame(bucketTimes)
	for name, vals := range f.Columns {
		agg := make([]float64, len(bucketTimes))
		for k := range bucketTimes {
			agg[k] = stat.Mean(vals[bounds[k]:bounds[k+1]], nil)
		}
		out.Columns[name] = agg
	}
	return out
}
