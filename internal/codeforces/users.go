package codeforces

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rodriguescarson/cfkit/internal/model"
)

// UserInfo returns profiles for one or more handles.
func (c *Client) UserInfo(ctx context.Context, handles ...string) ([]model.User, error) {
	if len(handles) == 0 {
		return nil, fmt.Errorf("user.info: at least one handle is required")
	}

	var raw []apiUser
	params := map[string]string{"handles": strings.Join(handles, ";")}
	if err := c.Call(ctx, "user.info", params, c.Authenticated(), &raw); err != nil {
		return nil, err
	}

	users := make([]model.User, len(raw))
	for i, u := range raw {
		users[i] = u.toModel()
	}
	return users, nil
}

// UserStatus returns up to count submissions of handle starting at the
// 1-based index from, newest first.
func (c *Client) UserStatus(ctx context.Context, handle string, from, count int) ([]model.Submission, error) {
	params := map[string]string{
		"handle": handle,
		"from":   strconv.Itoa(from),
		"count":  strconv.Itoa(count),
	}

	var subs []model.Submission
	if err := c.Call(ctx, "user.status", params, c.Authenticated(), &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// AllUserStatus pages through user.status until a short page is returned,
// pausing delay between pages.
func (c *Client) AllUserStatus(ctx context.Context, handle string, pageSize int, delay time.Duration) ([]model.Submission, error) {
	if pageSize <= 0 {
		pageSize = 1000
	}

	var all []model.Submission
	from := 1
	for {
		page, err := c.UserStatus(ctx, handle, from, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch submissions from %d: %w", from, err)
		}
		all = append(all, page...)

		c.logger.Debug("fetched submissions page",
			"handle", handle,
			"from", from,
			"count", len(page),
			"total", len(all),
		)

		if len(page) < pageSize {
			return all, nil
		}
		from += pageSize

		if delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
}

// UserRating returns the rating history of handle, oldest first.
func (c *Client) UserRating(ctx context.Context, handle string) ([]model.RatingChange, error) {
	var history []model.RatingChange
	params := map[string]string{"handle": handle}
	if err := c.Call(ctx, "user.rating", params, c.Authenticated(), &history); err != nil {
		return nil, err
	}
	return history, nil
}
