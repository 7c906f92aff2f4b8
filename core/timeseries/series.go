// Package timeseries provides the time-indexed series handling shared by
// the market data loaders and the dispatch engine: downsampling by mean,
// forward-fill alignment and value clipping.
package timeseries

import (
	"sort"
	"time"
)

// Series is a chronologically ordered sequence of float values.
type Series struct {
	Times  []time.Time
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Times) }

// At returns the value stored at index i.
func (s Series) At(i int) (time.Time, float64) { return s.Times[i], s.Values[i] }

// Slice returns the points with start <= t <= end.
func (s Series) Slice(start, end time.Time) Series {
	lo := sort.Search(len(s.Times), func(i int) bool { return !s.Times[i].Before(start) })
	hi := sort.Search(len(s.Times), func(i int) bool { return s.Times[i].After(end) })
	return Series{Times: s.Times[lo:hi], Values: s.Values[lo:hi]}
}

// Clip bounds every value to [floor, ceiling] in place.
func (s Series) Clip(floor, ceiling float64) {
	for i, v := range s.Values {
		if v < floor {
			s.Values[i] = floor
		} else if v > ceiling {
			s.Values[i] = ceiling
		}
	}
}

// Scale multiplies every value by f in place.
func (s Series) Scale(f float64) {
	for i := range s.Values {
		s.Values[i] *= f
	}
}

// AlignForwardFill projects the series onto the target index. Each target
// timestamp takes the most recent value at or before it; targets before the
// first point get zero.
func (s Series) AlignForwardFill(target []time.Time) Series {
	out := Series{Times: make([]time.Time, len(target)), Values: make([]float64, len(target))}
	copy(out.Times, target)
	j := -1
	for i, t := range target {
		for j+1 < len(s.Times) && !s.Times[j+1].After(t) {
			j++
		}
		if j >= 0 {
			out.Values[i] = s.Values[j]
		}
	}
	return out
}
