package reminder

import (
	"fmt"
	"time"
)

// StartLayout formats contest start times.
const StartLayout = "2006-01-02 15:04 UTC"

// FormatUntil renders the time from now until start as "Xd Yh", "Xh Ym" or
// "Xm". Past starts render as "started".
func FormatUntil(start, now time.Time) string {
	secs := int64(start.Sub(now) / time.Second)
	if secs < 0 {
		return "started"
	}

	days := secs / 86400
	hours := (secs % 86400) / 3600
	minutes := (secs % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatStart renders a start time in UTC.
func FormatStart(start time.Time) string {
	return start.UTC().Format(StartLayout)
}

// LeadKey is the ledger key for a lead time in minutes.
func LeadKey(minutes int) string {
	return fmt.Sprintf("%dm", minutes)
}
