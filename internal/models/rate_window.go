package models

import "time"

// RateWindow is the per-client record of past successful send
// instants, stored as a JSON array.
type RateWindow []time.Time

// Within returns the subset of instants newer than cutoff, preserving
// order.
func (w RateWindow) Within(cutoff time.Time) RateWindow {
	filtered := make(RateWindow, 0, len(w))
	for _, ts := range w {
		if ts.After(cutoff) {
			filtered = append(filtered, ts)
		}
	}
	return filtered
}
