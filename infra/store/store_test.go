package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemtools/bessim/core/marketdata"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func priceCSV(start time.Time, prices []float64) string {
	out := "timestamp,price_aud_per_mwh\n"
	for i, p := range prices {
		ts := start.Add(time.Duration(i) * 5 * time.Minute)
		out += fmt.Sprintf("%s,%g\n", ts.Format("2006-01-02 15:04:05"), p)
	}
	return out
}

func TestNewRejectsMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestPricesSlicesInclusive(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeCSV(t, dir, "NSW1_rrp.csv", priceCSV(start, []float64{10, 20, 30, 40, 50, 60}))

	s, err := New(dir, nil)
	require.NoError(t, err)

	frame, err := s.Prices("NSW1", start.Add(5*time.Minute), start.Add(15*time.Minute))
	require.NoError(t, err)
	require.Equal(t, 3, frame.Len())
	prices, ok := frame.Column("price_aud_per_mwh")
	require.True(t, ok)
	assert.Equal(t, []float64{20, 30, 40}, prices.Values)
}

func TestPricesMissingRegion(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = s.Prices("TAS1", time.Now(), time.Now())
	assert.ErrorIs(t, err, marketdata.ErrDataNotFound)
}

func TestPricesEmptySlice(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeCSV(t, dir, "NSW1_rrp.csv", priceCSV(start, []float64{10, 20}))

	s, err := New(dir, nil)
	require.NoError(t, err)

	_, err = s.Prices("NSW1", start.AddDate(1, 0, 0), start.AddDate(1, 0, 1))
	assert.ErrorIs(t, err, marketdata.ErrDataNotFound)
}

func TestProfileClimatologyMapping(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "site_1990.csv", "timestamp,power_mw\n"+
		"1990-01-01 10:00:00,4.1\n"+
		"1990-01-01 11:00:00,5.2\n")

	s, err := New(dir, nil)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC)
	series, err := s.Profile("site", start, end)
	require.NoError(t, err)
	require.Equal(t, 48, series.Len())

	// day-of-year 1 takes the reference values, day-of-year 2 has no
	// reference rows and stays zero
	assert.Equal(t, 4.1, series.Values[10])
	assert.Equal(t, 5.2, series.Values[11])
	assert.Zero(t, series.Values[12])
	assert.Zero(t, series.Values[24+10])
}

func TestProfileMissingFile(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = s.Profile("ghost", time.Now(), time.Now())
	assert.ErrorIs(t, err, marketdata.ErrSolarProfileNotFound)
}

func TestRegions(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeCSV(t, dir, "NSW1_rrp.csv", priceCSV(start, []float64{10}))
	writeCSV(t, dir, "VIC1_rrp.csv", priceCSV(start, []float64{20}))
	writeCSV(t, dir, "site_1990.csv", "timestamp,power_mw\n")

	s, err := New(dir, nil)
	require.NoError(t, err)

	regions, err := s.Regions()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"NSW1", "VIC1"}, regions)
}

func TestSummary(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeCSV(t, dir, "SA1_rrp.csv", priceCSV(start, []float64{10, 20, 30}))

	s, err := New(dir, nil)
	require.NoError(t, err)

	infos, err := s.Summary()
	require.NoError(t, err)
	require.Contains(t, infos, "SA1")
	info := infos["SA1"]
	assert.Equal(t, 3, info.Rows)
	assert.True(t, info.From.Equal(start))
	assert.True(t, info.To.Equal(start.Add(10*time.Minute)))
	assert.InDelta(t, 20, info.MeanPrice, 1e-9)
}

func TestReadFrameRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "QLD1_rrp.csv", "date,rrp\n2024-01-01 00:00:00,50\n")

	s, err := New(dir, nil)
	require.NoError(t, err)

	_, err = s.Prices("QLD1", time.Time{}, time.Now())
	assert.ErrorContains(t, err, "timestamp")
}
