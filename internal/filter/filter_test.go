package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/rodriguescarson/cfkit/internal/model"
)

var now = time.Unix(1700000000, 0)

func contestAt(id int, name string, offset time.Duration, phase model.Phase) model.Contest {
	start := now.Add(offset).Unix()
	return model.Contest{
		ID:               id,
		Name:             name,
		Type:             model.ContestTypeCF,
		Phase:            phase,
		StartTimeSeconds: &start,
		DurationSeconds:  7200,
	}
}

func TestInclude(t *testing.T) {
	div2 := ParseDivisions("div2")

	gym := contestAt(100001, "Gym Training (Div. 2)", time.Hour, model.PhaseBefore)
	gym.Type = model.ContestTypeGym

	unscheduled := contestAt(1, "Round (Div. 2)", time.Hour, model.PhaseBefore)
	unscheduled.StartTimeSeconds = nil

	tests := []struct {
		name       string
		contest    model.Contest
		divisions  Divisions
		includeGym bool
		want       bool
	}{
		{"div2 upcoming", contestAt(1, "Codeforces Round 900 (Div. 2)", time.Hour, model.PhaseBefore), div2, false, true},
		{"div1 rejected by div2 filter", contestAt(2, "Codeforces Round 900 (Div. 1)", time.Hour, model.PhaseBefore), div2, false, false},
		{"compact spelling", contestAt(3, "Educational Round Div2", time.Hour, model.PhaseBefore), div2, false, true},
		{"case insensitive", contestAt(4, "ROUND (DIV. 2)", time.Hour, model.PhaseBefore), div2, false, true},
		{"start in the past", contestAt(5, "Round (Div. 2)", -time.Minute, model.PhaseBefore), div2, false, false},
		{"start equals now", contestAt(6, "Round (Div. 2)", 0, model.PhaseBefore), div2, false, false},
		{"no start time", unscheduled, div2, false, false},
		{"coding phase accepted", contestAt(7, "Round (Div. 2)", time.Minute, model.PhaseCoding), div2, false, true},
		{"finished rejected", contestAt(8, "Round (Div. 2)", time.Hour, model.PhaseFinished), div2, false, false},
		{"system test rejected", contestAt(9, "Round (Div. 2)", time.Hour, model.PhaseSystemTest), div2, false, false},
		{"gym excluded", gym, Divisions{}, false, false},
		{"gym included", gym, Divisions{}, true, true},
		{"empty set accepts any name", contestAt(10, "Kotlin Heroes", time.Hour, model.PhaseBefore), Divisions{}, false, true},
		{"unknown token never matches", contestAt(11, "Round (Div. 2)", time.Hour, model.PhaseBefore), ParseDivisions("educational"), false, false},
		{"multi division", contestAt(12, "Round (Div. 1 + Div. 2)", time.Hour, model.PhaseBefore), ParseDivisions("div1"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Include(tt.contest, tt.divisions, now, tt.includeGym); got != tt.want {
				t.Errorf("Include() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpcoming(t *testing.T) {
	contests := []model.Contest{
		contestAt(3, "Round C (Div. 3)", 3*time.Hour, model.PhaseBefore),
		contestAt(1, "Round A (Div. 2)", time.Hour, model.PhaseBefore),
		contestAt(9, "Round Old (Div. 2)", -time.Hour, model.PhaseFinished),
		contestAt(2, "Round B (Div. 1)", 2*time.Hour, model.PhaseBefore),
	}

	got := Upcoming(contests, ParseDivisions("div2,div3"), now, false)
	var ids []int
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	if want := []int{1, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Upcoming() ids = %v, want %v", ids, want)
	}
}

func TestParseDivisions(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"div2,div3", "div2,div3"},
		{" Div3 , DIV2 ", "div2,div3"},
		{"all", "all"},
		{"div2,all", "all"},
		{"", "all"},
		{",,", "all"},
	}

	for _, tt := range tests {
		if got := ParseDivisions(tt.raw).String(); got != tt.want {
			t.Errorf("ParseDivisions(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseLeadTimes(t *testing.T) {
	tests := []struct {
		raw  string
		want []int
	}{
		{"1440,60,15", []int{1440, 60, 15}},
		{"15, 1440 ,60", []int{1440, 60, 15}},
		{"30,30,5", []int{30, 5}},
		{"", []int{1440, 60, 15}},
		{"abc", []int{1440, 60, 15}},
		{"60,-5", []int{1440, 60, 15}},
	}

	for _, tt := range tests {
		if got := ParseLeadTimes(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseLeadTimes(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	got := ParseLeadTimes("")
	got[0] = 1
	if DefaultLeadTimes[0] != 1440 {
		t.Error("ParseLeadTimes must not alias DefaultLeadTimes")
	}
}
