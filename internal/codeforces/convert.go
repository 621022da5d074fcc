package codeforces

import "github.com/rodriguescarson/cfkit/internal/model"

func (u apiUser) toModel() model.User {
	user := model.User{
		Handle:        u.Handle,
		Rank:          u.Rank,
		MaxRank:       u.MaxRank,
		Organization:  u.Organization,
		Country:       u.Country,
		City:          u.City,
		Contribution:  u.Contribution,
		FriendOfCount: u.FriendOfCount,
	}
	if u.Rating != nil {
		user.Rating = *u.Rating
	}
	if u.MaxRating != nil {
		user.MaxRating = *u.MaxRating
	}
	if user.Rank == "" {
		user.Rank = Unrated
	}
	if user.MaxRank == "" {
		user.MaxRank = Unrated
	}
	return user
}

func (s apiStandings) toModel() *Standings {
	problems := make([]model.Problem, len(s.Problems))
	for i, p := range s.Problems {
		if p.ContestID == 0 {
			p.ContestID = s.Contest.ID
		}
		problems[i] = p
	}
	return &Standings{Contest: s.Contest, Problems: problems}
}
