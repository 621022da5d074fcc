package codeforces

import (
	"context"
	"strconv"
	"strings"

	"github.com/rodriguescarson/cfkit/internal/model"
)

type problemsetResult struct {
	Problems []model.Problem `json:"problems"`
}

// ProblemsetProblems returns problems carrying all of the given tags.
func (c *Client) ProblemsetProblems(ctx context.Context, tags ...string) ([]model.Problem, error) {
	params := map[string]string{}
	if len(tags) > 0 {
		params["tags"] = strings.Join(tags, ";")
	}

	var res problemsetResult
	if err := c.Call(ctx, "problemset.problems", params, false, &res); err != nil {
		return nil, err
	}
	return res.Problems, nil
}

// RecentStatus returns the most recent submissions across the platform.
func (c *Client) RecentStatus(ctx context.Context, count int) ([]model.Submission, error) {
	params := map[string]string{"count": strconv.Itoa(count)}

	var subs []model.Submission
	if err := c.Call(ctx, "problemset.recentStatus", params, false, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
