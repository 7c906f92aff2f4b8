package store

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// scanEnd bounds the unbounded summary scan; no data file reaches it.
var scanEnd = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// RegionInfo summarizes one region's price file.
type RegionInfo struct {
	Rows      int
	From      time.Time
	To        time.Time
	MeanPrice float64
}

// Summary inspects every region in the store. The mean price is taken from
// the price_aud_per_mwh column when present.
func (s *Store) Summary() (map[string]RegionInfo, error) {
	regions, err := s.Regions()
	if err != nil {
		return nil, err
	}
	out := make(map[string]RegionInfo, len(regions))
	for _, region := range regions {
		frame, err := s.Prices(region, time.Time{}, scanEnd)
		if err != nil {
			return nil, err
		}
		info := RegionInfo{Rows: frame.Len()}
		if frame.Len() > 0 {
			info.From = frame.Times[0]
			info.To = frame.Times[frame.Len()-1]
		}
		if prices, ok := frame.Column("price_aud_per_mwh"); ok {
			info.MeanPrice = stat.Mean(prices.Values, nil)
		}
		out[region] = info
	}
	return out, nil
}
