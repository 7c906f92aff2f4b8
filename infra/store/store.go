// Package store loads organized historical market and solar data from CSV
// files on disk. File layout follows the organized-data convention:
// "<REGION>_rrp.csv" holds five-minute price rows, "<profile>_1990.csv"
// holds one reference year of hourly solar production.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nemtools/bessim/core/logger"
	"github.com/nemtools/bessim/core/marketdata"
	"github.com/nemtools/bessim/core/timeseries"
)

const (
	priceSuffix   = "_rrp.csv"
	profileSuffix = "_1990.csv"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// Store reads organized data files from a single directory.
type Store struct {
	dir string
	log logger.Logger
}

// New returns a Store rooted at dir. The directory must exist.
func New(dir string, log logger.Logger) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("organized data path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("organized data path %s is not a directory", dir)
	}
	return &Store{dir: dir, log: log}, nil
}

// Prices loads the region's price file and returns the rows with
// start <= timestamp <= end at the native five-minute resolution.
func (s *Store) Prices(region string, start, end time.Time) (*timeseries.Frame, error) {
	path := filepath.Join(s.dir, region+priceSuffix)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("region %s: %s: %w", region, path, marketdata.ErrDataNotFound)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && s.log != nil {
			s.log.Warnf("close %s: %v", path, cerr)
		}
	}()

	frame, err := readFrame(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	frame = sliceFrame(frame, start, end)
	if frame.Len() == 0 {
		return nil, fmt.Errorf("region %s has no rows between %s and %s: %w",
			region, start.Format(time.DateOnly), end.Format(time.DateOnly), marketdata.ErrDataNotFound)
	}
	if s.log != nil {
		s.log.Infof("loaded %d rows for %s from %s", frame.Len(), region, path)
	}
	return frame, nil
}

// Profile synthesizes an hourly production series over [start, end] from
// the named reference-year file, matching rows by day-of-year and
// hour-of-day. Hours absent from the reference data yield zero.
func (s *Store) Profile(name string, start, end time.Time) (timeseries.Series, error) {
	path := filepath.Join(s.dir, name+profileSuffix)
	f, err := os.Open(path)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("profile %s: %s: %w", name, path, marketdata.ErrSolarProfileNotFound)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && s.log != nil {
			s.log.Warnf("close %s: %v", path, cerr)
		}
	}()

	ref, err := readFrame(f)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("read %s: %w", path, err)
	}
	power, ok := ref.Column("power_mw")
	if !ok {
		return timeseries.Series{}, fmt.Errorf("profile %s: missing power_mw column", name)
	}

	byHour := make(map[[2]int]float64, power.Len())
	for i := 0; i < power.Len(); i++ {
		t, v := power.At(i)
		byHour[[2]int{t.YearDay(), t.Hour()}] = v
	}

	out := ZeroProfile(start, end)
	for i, t := range out.Times {
		if v, ok := byHour[[2]int{t.YearDay(), t.Hour()}]; ok {
			out.Values[i] = v
		}
	}
	return out, nil
}

// ZeroProfile returns an all-zero hourly series covering [start, end].
// It is the fallback when a solar profile is missing.
func ZeroProfile(start, end time.Time) timeseries.Series {
	var times []time.Time
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		times = append(times, t)
	}
	return timeseries.Series{Times: times, Values: make([]float64, len(times))}
}

// Regions lists the regions with a price file in the store.
func (s *Store) Regions() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var regions []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, priceSuffix) {
			regions = append(regions, strings.TrimSuffix(name, priceSuffix))
		}
	}
	return regions, nil
}

func readFrame(r io.Reader) (*timeseries.Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || header[0] != "timestamp" {
		return nil, fmt.Errorf("unexpected header %v, want timestamp first", header)
	}

	var times []time.Time
	cols := make([][]float64, len(header)-1)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t, err := parseTime(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		times = append(times, t)
		for i, raw := range rec[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, header[i+1], err)
			}
			cols[i] = append(cols[i], v)
		}
	}

	frame := timeseries.NewFrame(times)
	for i, name := range header[1:] {
		frame.SetColumn(name, cols[i])
	}
	return frame, nil
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

func sliceFrame(f *timeseries.Frame, start, end time.Time) *timeseries.Frame {
	lo, hi := 0, f.Len()
	for lo < hi && f.Times[lo].Before(start) {
		lo++
	}
	for hi > lo && f.Times[hi-1].After(end) {
		hi--
	}
	out := timeseries.NewFrame(f.Times[lo:hi])
	for name, vals := range f.Columns {
		out.SetColumn(name, vals[lo:hi])
	}
	return out
}
