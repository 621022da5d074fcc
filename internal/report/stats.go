// Package report builds and renders the console statistics report.
package report

import (
	"context"
	"sort"
	"strconv"
	"time"
	"unicode"

	"github.com/rodriguescarson/cfkit/internal/model"
	"github.com/rodriguescarson/cfkit/internal/store"
)

const (
	topContests       = 10
	recentRatingCount = 5
	recentSubmissions = 10
	weekWindow        = 7 * 24 * time.Hour
)

// API is the part of the Codeforces client the report needs.
type API interface {
	UserInfo(ctx context.Context, handles ...string) ([]model.User, error)
	UserStatus(ctx context.Context, handle string, from, count int) ([]model.Submission, error)
}

// ContestCount is the number of solved problems of one contest.
type ContestCount struct {
	ContestID int
	Solved    int
}

// RatingSummary aggregates a rating history.
type RatingSummary struct {
	Contests int
	Current  int
	Recent   []model.RatingChange
	Highest  int
	Lowest   int
	Average  int
}

// Stats is everything the report shows. Live sections carry their own error
// so one failing API call does not hide the cached sections.
type Stats struct {
	Handle string

	User    *model.User
	UserErr error

	TotalSolved  int
	ByContest    []ContestCount
	MoreContests int

	Rating *RatingSummary

	Recent    []model.Submission
	RecentErr error

	LastSync         *time.Time
	ContestsThisWeek int
}

// Build collects the report from the API and the local caches.
func Build(ctx context.Context, api API, st *store.Store, handle string, now time.Time) *Stats {
	s := &Stats{Handle: handle}

	users, err := api.UserInfo(ctx, handle)
	switch {
	case err != nil:
		s.UserErr = err
	case len(users) > 0:
		s.User = &users[0]
	}

	solved := st.LoadSolved()
	s.TotalSolved = len(solved.Problems)
	s.ByContest, s.MoreContests = countByContest(solved.Problems, topContests)
	s.LastSync = solved.LastSync

	history := st.LoadRating().History
	s.Rating = SummarizeRating(history)
	s.ContestsThisWeek = contestsSince(history, now.Add(-weekWindow))

	s.Recent, s.RecentErr = api.UserStatus(ctx, handle, 1, recentSubmissions)
	return s
}

// countByContest groups problem keys like "1850A" by contest id, newest
// contest first, and returns at most limit groups plus the number left out.
func countByContest(problems []string, limit int) ([]ContestCount, int) {
	counts := make(map[int]int)
	for _, p := range problems {
		i := 0
		for i < len(p) && unicode.IsDigit(rune(p[i])) {
			i++
		}
		if i == 0 || i == len(p) || !unicode.IsUpper(rune(p[i])) {
			continue
		}
		id, err := strconv.Atoi(p[:i])
		if err != nil {
			continue
		}
		counts[id]++
	}

	out := make([]ContestCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, ContestCount{ContestID: id, Solved: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContestID > out[j].ContestID })

	more := 0
	if len(out) > limit {
		more = len(out) - limit
		out = out[:limit]
	}
	return out, more
}

// SummarizeRating returns nil for an empty history. Highest, Lowest and
// Average are only set when there are at least two contests.
func SummarizeRating(history []model.RatingChange) *RatingSummary {
	if len(history) == 0 {
		return nil
	}

	sum := &RatingSummary{
		Contests: len(history),
		Current:  history[len(history)-1].NewRating,
	}
	from := max(0, len(history)-recentRatingCount)
	sum.Recent = history[from:]

	if len(history) > 1 {
		sum.Highest, sum.Lowest = history[0].NewRating, history[0].NewRating
		total := 0
		for _, h := range history {
			sum.Highest = max(sum.Highest, h.NewRating)
			sum.Lowest = min(sum.Lowest, h.NewRating)
			total += h.NewRating
		}
		sum.Average = total / len(history)
	}
	return sum
}

func contestsSince(history []model.RatingChange, since time.Time) int {
	n := 0
	for _, h := range history {
		if !time.Unix(h.RatingUpdateTimeSeconds, 0).Before(since) {
			n++
		}
	}
	return n
}
