package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nemtools/bessim/core/model"
)

func TestWriteIntervalsCSV(t *testing.T) {
	records := []model.IntervalRecord{
		{
			Timestamp:       time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
			PriceAUDPerMWh:  52.5,
			ChargeMW:        5,
			GridChargeMW:    5,
			SocMWh:          2.5,
			EnergyChargeMWh: 0.25,
			CostAUD:         13.125,
		},
	}

	var buf bytes.Buffer
	if err := WriteIntervalsCSV(&buf, records); err != nil {
		t.Fatalf("WriteIntervalsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 row", len(lines))
	}
	if got := strings.Count(lines[0], ","); got != 14 {
		t.Fatalf("header has %d commas, want 14", got)
	}
	want := "2024-01-01T10:30:00Z,52.5,0,5,0,0,0,5,2.5,0.25,0,0,0,13.125,0"
	if lines[1] != want {
		t.Fatalf("row = %q, want %q", lines[1], want)
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	s := model.Summary{RunID: "r1", NetProfitAUD: 99.5}
	if err := WriteSummaryJSON(&buf, s); err != nil {
		t.Fatalf("WriteSummaryJSON: %v", err)
	}
	var got model.Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RunID != "r1" || got.NetProfitAUD != 99.5 {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestTimestampedFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 30, 0, time.UTC)
	got := TimestampedFilename("nsw1_summary", "json", 3, now)
	if got != "nsw1_summary_20240315_090530_v3.json" {
		t.Fatalf("filename = %q", got)
	}
}

func TestNextVersion(t *testing.T) {
	dir := t.TempDir()
	if v := NextVersion(dir, "run", "csv"); v != 1 {
		t.Fatalf("empty dir version = %d, want 1", v)
	}

	for _, name := range []string{
		"run_20240101_000000_v1.csv",
		"run_20240102_000000_v4.csv",
		"run_20240102_000000_v2.json",
		"other_20240102_000000_v9.csv",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if v := NextVersion(dir, "run", "csv"); v != 5 {
		t.Fatalf("version = %d, want 5", v)
	}
}

func TestTimestampedPathCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs", "bessim")
	now := time.Date(2024, 3, 15, 9, 5, 30, 0, time.UTC)
	path, err := TimestampedPath(dir, "run", "csv", now)
	if err != nil {
		t.Fatalf("TimestampedPath: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path %q outside dir %q", path, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("dir not created: %v", err)
	}
	if !strings.HasSuffix(path, "_v1.csv") {
		t.Fatalf("path = %q, want _v1.csv suffix", path)
	}
}
