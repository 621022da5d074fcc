package model

import (
	"fmt"
	"strconv"
	"time"
)

// ContestType is the contest scoring system reported by the API.
type ContestType string

const (
	ContestTypeCF   ContestType = "CF"
	ContestTypeIOI  ContestType = "IOI"
	ContestTypeICPC ContestType = "ICPC"
	ContestTypeGym  ContestType = "GYM"
)

// Phase is a contest lifecycle phase.
type Phase string

const (
	PhaseBefore            Phase = "BEFORE"
	PhaseCoding            Phase = "CODING"
	PhasePendingSystemTest Phase = "PENDING_SYSTEM_TEST"
	PhaseSystemTest        Phase = "SYSTEM_TEST"
	PhaseFinished          Phase = "FINISHED"
)

// ContestURLBase is the public contest page prefix.
const ContestURLBase = "https://codeforces.com/contest/"

// -----------------------------------------------------------------------------
// Contests
// -----------------------------------------------------------------------------

// Contest is a snapshot of one contest from contest.list.
type Contest struct {
	ID                  int         `json:"id"`
	Name                string      `json:"name"`
	Type                ContestType `json:"type"`
	Phase               Phase       `json:"phase"`
	Gym                 bool        `json:"gym,omitempty"`
	StartTimeSeconds    *int64      `json:"startTimeSeconds,omitempty"` // nil when unscheduled
	DurationSeconds     int64       `json:"durationSeconds"`
	RelativeTimeSeconds int64       `json:"relativeTimeSeconds,omitempty"`
}

// IsGym reports whether the contest belongs to the gym.
func (c Contest) IsGym() bool {
	return c.Type == ContestTypeGym || c.Gym
}

// StartTime returns the scheduled start and whether one is set.
func (c Contest) StartTime() (time.Time, bool) {
	if c.StartTimeSeconds == nil {
		return time.Time{}, false
	}
	return time.Unix(*c.StartTimeSeconds, 0), true
}

// URL returns the contest page.
func (c Contest) URL() string {
	return ContestURLBase + strconv.Itoa(c.ID)
}

// Key is the contest id as used by the reminder ledger.
func (c Contest) Key() string {
	return strconv.Itoa(c.ID)
}

// -----------------------------------------------------------------------------
// Users and ratings
// -----------------------------------------------------------------------------

// User is a user.info record. Absent ratings are 0 and absent ranks "unrated".
type User struct {
	Handle        string `json:"handle"`
	Rating        int    `json:"rating"`
	MaxRating     int    `json:"maxRating"`
	Rank          string `json:"rank"`
	MaxRank       string `json:"maxRank"`
	Organization  string `json:"organization,omitempty"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	Contribution  int    `json:"contribution"`
	FriendOfCount int    `json:"friendOfCount"`
}

// RatingChange is one user.rating entry.
type RatingChange struct {
	ContestID               int    `json:"contestId"`
	ContestName             string `json:"contestName"`
	Handle                  string `json:"handle,omitempty"`
	Rank                    int    `json:"rank,omitempty"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
	OldRating               int    `json:"oldRating"`
	NewRating               int    `json:"newRating"`
}

// Delta returns the rating change.
func (r RatingChange) Delta() int {
	return r.NewRating - r.OldRating
}

// -----------------------------------------------------------------------------
// Problems and submissions
// -----------------------------------------------------------------------------

// Problem identifies a problem inside a contest.
type Problem struct {
	ContestID int      `json:"contestId,omitempty"`
	Index     string   `json:"index"`
	Name      string   `json:"name,omitempty"`
	Rating    int      `json:"rating,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Key returns "{contestId}{index}".
func (p Problem) Key() string {
	return fmt.Sprintf("%d%s", p.ContestID, p.Index)
}

// Verdict is a judged submission outcome.
type Verdict string

// VerdictOK marks an accepted submission.
const VerdictOK Verdict = "OK"

// Submission is one user.status entry.
type Submission struct {
	ID                  int64   `json:"id"`
	ContestID           int     `json:"contestId,omitempty"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
	Problem             Problem `json:"problem"`
	ProgrammingLanguage string  `json:"programmingLanguage,omitempty"`
	Verdict             Verdict `json:"verdict,omitempty"`
}

// Accepted reports whether the submission has verdict OK.
func (s Submission) Accepted() bool {
	return s.Verdict == VerdictOK
}
