// Package window evaluates recurring daily clock-time dispatch windows.
package window

import "time"

// InWindow reports whether t falls inside the half-open window
// [start, end), both given as HH:MM of day. A window whose start is later
// than its end wraps midnight: 22:00-06:00 covers 23:00 and 02:00 but not
// 06:00 or 21:59.
func InWindow(t time.Time, start, end string) bool {
	hm := t.Format("15:04")
	if start <= end {
		return start <= hm && hm < end
	}
	return hm >= start || hm < end
}
