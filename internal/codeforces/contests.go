package codeforces

import (
	"context"
	"strconv"
	"strings"

	"github.com/rodriguescarson/cfkit/internal/model"
)

// ContestList returns all contests. Gym contests are listed only when gym is
// set.
func (c *Client) ContestList(ctx context.Context, gym bool) ([]model.Contest, error) {
	params := map[string]string{"gym": strconv.FormatBool(gym)}

	var contests []model.Contest
	if err := c.Call(ctx, "contest.list", params, false, &contests); err != nil {
		return nil, err
	}
	if gym {
		for i := range contests {
			contests[i].Gym = true
		}
	}
	return contests, nil
}

// ContestStandings returns the contest and its problems. A count of 0 leaves
// the row range to the server.
func (c *Client) ContestStandings(ctx context.Context, contestID, from, count int, handles ...string) (*Standings, error) {
	params := map[string]string{
		"contestId": strconv.Itoa(contestID),
		"from":      strconv.Itoa(from),
	}
	if count > 0 {
		params["count"] = strconv.Itoa(count)
	}
	if len(handles) > 0 {
		params["handles"] = strings.Join(handles, ";")
	}

	var raw apiStandings
	if err := c.Call(ctx, "contest.standings", params, c.Authenticated(), &raw); err != nil {
		return nil, err
	}
	return raw.toModel(), nil
}

// ContestRatingChanges returns the rating changes caused by a contest.
func (c *Client) ContestRatingChanges(ctx context.Context, contestID int) ([]model.RatingChange, error) {
	params := map[string]string{"contestId": strconv.Itoa(contestID)}

	var changes []model.RatingChange
	if err := c.Call(ctx, "contest.ratingChanges", params, false, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}
