package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rodriguescarson/cfkit/internal/codeforces"
	"github.com/rodriguescarson/cfkit/internal/filter"
	"github.com/rodriguescarson/cfkit/internal/model"
	"github.com/rodriguescarson/cfkit/internal/version"
)

const notFoundMessage = "User not found"

var errUserNotFound = errors.New("user not found")

type userSummary struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
	Rank      string `json:"rank"`
	MaxRank   string `json:"maxRank"`
}

type statsCounts struct {
	SolvedCount       int `json:"solvedCount"`
	RecentSubmissions int `json:"recentSubmissions"`
	RatingChanges     int `json:"ratingChanges"`
}

type recentSubmission struct {
	ID                  int64         `json:"id"`
	Problem             string        `json:"problem"`
	Verdict             model.Verdict `json:"verdict"`
	CreationTimeSeconds int64         `json:"creationTimeSeconds"`
}

func (s *Server) index(c *gin.Context) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"version": version.String(),
	}
	if s.feed != nil {
		if snap, ok := s.feed.Latest(); ok {
			body["feedUpdatedAt"] = snap.FetchedAt
			body["upcoming"] = len(snap.Contests)
		}
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) settings(c *gin.Context) {
	handles := s.handles
	if handles == nil {
		handles = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"handles": handles,
		"filter":  filter.ParseDivisions(s.defaultFilter).String(),
	})
}

func (s *Server) contests(c *gin.Context) {
	divisions := s.divisions(c)
	includeGym := queryBool(c, "include_gym")

	all, err := s.api.ContestList(c.Request.Context(), includeGym)
	if err != nil {
		s.logger.Warn("contest list failed", "error", err)
		fail(c, http.StatusInternalServerError, err)
		return
	}

	upcoming := filter.Upcoming(all, divisions, s.now(), includeGym)
	if upcoming == nil {
		upcoming = []model.Contest{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"contests": upcoming,
		"count":    len(upcoming),
	})
}

func (s *Server) stats(c *gin.Context) {
	handle, ok := requireHandle(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := s.lookupUser(c, handle)
	if err != nil {
		s.userError(c, handle, err)
		return
	}

	var (
		subs    []model.Submission
		history []model.RatingChange
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = s.api.UserStatus(gctx, handle, 1, StatsSubmissions)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.api.UserRating(gctx, handle)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("stats lookup failed", "handle", handle, "error", err)
		fail(c, http.StatusInternalServerError, err)
		return
	}

	if len(subs) > StatsSubmissions {
		subs = subs[:StatsSubmissions]
	}
	recent := make([]recentSubmission, 0, len(subs))
	for _, sub := range subs {
		recent = append(recent, recentSubmission{
			ID:                  sub.ID,
			Problem:             sub.Problem.Key(),
			Verdict:             sub.Verdict,
			CreationTimeSeconds: sub.CreationTimeSeconds,
		})
	}

	lastRatings := history
	if len(lastRatings) > StatsRatingHistory {
		lastRatings = lastRatings[len(lastRatings)-StatsRatingHistory:]
	}
	if lastRatings == nil {
		lastRatings = []model.RatingChange{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": userSummary{
			Handle:    user.Handle,
			Rating:    user.Rating,
			MaxRating: user.MaxRating,
			Rank:      user.Rank,
			MaxRank:   user.MaxRank,
		},
		"stats": statsCounts{
			SolvedCount:       len(model.DeriveSolved(subs)),
			RecentSubmissions: len(subs),
			RatingChanges:     len(history),
		},
		"ratingHistory":     lastRatings,
		"recentSubmissions": recent,
	})
}

func (s *Server) user(c *gin.Context) {
	handle, ok := requireHandle(c)
	if !ok {
		return
	}

	user, err := s.lookupUser(c, handle)
	if err != nil {
		s.userError(c, handle, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}

func (s *Server) lookupUser(c *gin.Context, handle string) (*model.User, error) {
	users, err := s.api.UserInfo(c.Request.Context(), handle)
	if err != nil {
		var apiErr *codeforces.APIError
		if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Comment), "not found") {
			return nil, errUserNotFound
		}
		return nil, err
	}
	if len(users) == 0 {
		return nil, errUserNotFound
	}
	return &users[0], nil
}

func (s *Server) userError(c *gin.Context, handle string, err error) {
	if errors.Is(err, errUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": notFoundMessage,
		})
		return
	}
	s.logger.Warn("user lookup failed", "handle", handle, "error", err)
	fail(c, http.StatusInternalServerError, err)
}

func requireHandle(c *gin.Context) (string, bool) {
	handle := strings.TrimSpace(c.Query("handle"))
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "handle parameter required",
		})
		return "", false
	}
	return handle, true
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": err.Error(),
	})
}
