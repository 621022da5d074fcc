package model

import "sort"

// SolvedSet is a set of problem keys.
type SolvedSet map[string]struct{}

// DeriveSolved returns the keys of problems with at least one OK submission.
// Submissions without a contest id or index are ignored.
func DeriveSolved(subs []Submission) SolvedSet {
	solved := make(SolvedSet)
	for _, s := range subs {
		if !s.Accepted() {
			continue
		}
		if s.Problem.ContestID == 0 || s.Problem.Index == "" {
			continue
		}
		solved[s.Problem.Key()] = struct{}{}
	}
	return solved
}

// NewSolvedSet builds a set from keys.
func NewSolvedSet(keys ...string) SolvedSet {
	s := make(SolvedSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is in the set.
func (s SolvedSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the keys in ascending string order.
func (s SolvedSet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Minus returns the keys in s that are not in other.
func (s SolvedSet) Minus(other SolvedSet) SolvedSet {
	out := make(SolvedSet)
	for k := range s {
		if !other.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// FirstAccepted maps each solved problem key to the problem of its first OK
// submission in subs.
func FirstAccepted(subs []Submission) map[string]Problem {
	out := make(map[string]Problem)
	for _, s := range subs {
		if !s.Accepted() {
			continue
		}
		if _, ok := out[s.Problem.Key()]; !ok {
			out[s.Problem.Key()] = s.Problem
		}
	}
	return out
}
