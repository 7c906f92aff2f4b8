package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// TimestampedFilename builds "base_YYYYMMDD_HHMMSS_vN.ext".
func TimestampedFilename(base, ext string, version int, now time.Time) string {
	return fmt.Sprintf("%s_%s_v%d.%s", base, now.Format("20060102_150405"), version, ext)
}

// NextVersion scans dir for files matching "base_*_vN.ext" and returns the
// next version number to use, starting at 1.
func NextVersion(dir, base, ext string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 1
	}
	max := 0
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base+"_") || !strings.HasSuffix(name, "."+ext) {
			continue
		}
		stem := strings.TrimSuffix(name, "."+ext)
		parts := strings.Split(stem, "_")
		last := parts[len(parts)-1]
		if !strings.HasPrefix(last, "v") {
			continue
		}
		if v, err := strconv.Atoi(last[1:]); err == nil && v > max {
			max = v
		}
	}
	return max + 1
}

// TimestampedPath combines NextVersion and TimestampedFilename, creating
// dir if needed.
func TimestampedPath(dir, base, ext string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	v := NextVersion(dir, base, ext)
	return filepath.Join(dir, TimestampedFilename(base, ext, v, now)), nil
}
