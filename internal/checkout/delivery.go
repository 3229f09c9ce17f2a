package checkout

import (
	"strconv"
	"strings"
	"time"
)

// DefaultCutoff applies when a product carries no cutoff of its own.
const DefaultCutoff = "23:59"

// EstimateDeliveryDate computes the promised calendar date for one cart
// line. Orders placed strictly after the day's cutoff slip one day
// before the lead time is added. A lead time of zero means no estimate
// can be given (ok=false), never "today".
func EstimateDeliveryDate(leadDays int, cutoff string, now time.Time) (time.Time, bool) {
	if leadDays <= 0 {
		return time.Time{}, false
	}

	hour, min := parseCutoff(cutoff)
	cutoffAt := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())

	d := now
	if now.After(cutoffAt) {
		d = d.AddDate(0, 0, 1)
	}
	d = d.AddDate(0, 0, leadDays)

	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location()), true
}

func parseCutoff(cutoff string) (hour, min int) {
	s := strings.TrimSpace(cutoff)
	if s == "" {
		s = DefaultCutoff
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 23, 59
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 23, 59
	}
	return h, m
}
