package codeforces

import "github.com/rodriguescarson/cfkit/internal/model"

// Unrated is the rank reported for users without one.
const Unrated = "unrated"

// apiUser is the wire shape of user.info. Rating fields are absent for users
// that never competed.
type apiUser struct {
	Handle        string `json:"handle"`
	Rating        *int   `json:"rating"`
	MaxRating     *int   `json:"maxRating"`
	Rank          string `json:"rank"`
	MaxRank       string `json:"maxRank"`
	Organization  string `json:"organization"`
	Country       string `json:"country"`
	City          string `json:"city"`
	Contribution  int    `json:"contribution"`
	FriendOfCount int    `json:"friendOfCount"`
}

// apiStandings is the part of contest.standings we use.
type apiStandings struct {
	Contest  model.Contest   `json:"contest"`
	Problems []model.Problem `json:"problems"`
}

// Standings is the contest and its problem list.
type Standings struct {
	Contest  model.Contest
	Problems []model.Problem
}
