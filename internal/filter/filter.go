// Package filter decides which contests are worth a reminder.
package filter

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rodriguescarson/cfkit/internal/model"
)

// Divisions is a set of lowercase tokens such as "div2". An empty set
// accepts every contest.
type Divisions map[string]struct{}

// DefaultLeadTimes are the reminder offsets in minutes, largest first.
var DefaultLeadTimes = []int{1440, 60, 15}

// Include reports whether a contest is eligible for reminders at now.
func Include(c model.Contest, divisions Divisions, now time.Time, includeGym bool) bool {
	start, ok := c.StartTime()
	if !ok || !start.After(now) {
		return false
	}
	if c.Phase != model.PhaseBefore && c.Phase != model.PhaseCoding {
		return false
	}
	if c.IsGym() && !includeGym {
		return false
	}
	if len(divisions) == 0 {
		return true
	}

	name := strings.ToLower(c.Name)
	for div := range divisions {
		n, ok := strings.CutPrefix(div, "div")
		if !ok || n == "" {
			continue
		}
		if strings.Contains(name, "div. "+n) || strings.Contains(name, "div"+n) {
			return true
		}
	}
	return false
}

// Upcoming returns the eligible contests ordered by start time.
func Upcoming(contests []model.Contest, divisions Divisions, now time.Time, includeGym bool) []model.Contest {
	var out []model.Contest
	for _, c := range contests {
		if Include(c, divisions, now, includeGym) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].StartTimeSeconds < *out[j].StartTimeSeconds
	})
	return out
}

// ParseDivisions parses a comma separated list like "div2, Div3".
// "all" or an empty string yields the empty set.
func ParseDivisions(raw string) Divisions {
	divisions := Divisions{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if tok == "all" {
			return Divisions{}
		}
		divisions[tok] = struct{}{}
	}
	return divisions
}

// String renders the set sorted, or "all".
func (d Divisions) String() string {
	if len(d) == 0 {
		return "all"
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// ParseLeadTimes parses minutes like "60,1440,15" into a descending,
// duplicate free list. Empty or invalid input returns DefaultLeadTimes.
func ParseLeadTimes(raw string) []int {
	seen := map[int]bool{}
	var out []int
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n <= 0 {
			return defaultLeadTimes()
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return defaultLeadTimes()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func defaultLeadTimes() []int {
	return append([]int(nil), DefaultLeadTimes...)
}
