package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rodriguescarson/cfkit/internal/codeforces"
	"github.com/rodriguescarson/cfkit/internal/feed"
	"github.com/rodriguescarson/cfkit/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Unix(1700000000, 0)

func at(sec int64) *int64 { return &sec }

type fakeAPI struct {
	mu          sync.Mutex
	users       []model.User
	userErr     error
	subs        []model.Submission
	subsErr     error
	rating      []model.RatingChange
	contests    []model.Contest
	contestsErr error
	gymArg      bool
	statusCount int
}

func (f *fakeAPI) UserInfo(ctx context.Context, handles ...string) ([]model.User, error) {
	return f.users, f.userErr
}

func (f *fakeAPI) UserStatus(ctx context.Context, handle string, from, count int) ([]model.Submission, error) {
	f.mu.Lock()
	f.statusCount = count
	f.mu.Unlock()
	return f.subs, f.subsErr
}

func (f *fakeAPI) UserRating(ctx context.Context, handle string) ([]model.RatingChange, error) {
	return f.rating, nil
}

func (f *fakeAPI) ContestList(ctx context.Context, gym bool) ([]model.Contest, error) {
	f.gymArg = gym
	return f.contests, f.contestsErr
}

type fakeFeed struct {
	ch     chan feed.Snapshot
	latest *feed.Snapshot
}

func (f *fakeFeed) Latest() (feed.Snapshot, bool) {
	if f.latest == nil {
		return feed.Snapshot{}, false
	}
	return *f.latest, true
}

func (f *fakeFeed) Subscribe() (<-chan feed.Snapshot, func()) {
	return f.ch, func() {}
}

func sampleContests() []model.Contest {
	return []model.Contest{
		{ID: 3, Name: "Codeforces Round (Div. 2)", Phase: model.PhaseBefore, StartTimeSeconds: at(1700009000)},
		{ID: 1, Name: "Codeforces Round (Div. 3)", Phase: model.PhaseBefore, StartTimeSeconds: at(1700003000)},
		{ID: 2, Name: "Educational Round", Phase: model.PhaseBefore, StartTimeSeconds: at(1700005000)},
		{ID: 4, Name: "Old Round (Div. 2)", Phase: model.PhaseFinished, StartTimeSeconds: at(1600000000)},
	}
}

func newTestServer(api API, opts ...Option) *Server {
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return New(api, opts...)
}

func get(t *testing.T, s *Server, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return rec, body
}

func TestContests(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantIDs []float64
	}{
		{"default filter", "/api/contests", []float64{1, 3}},
		{"div3 only", "/api/contests?filter=div3", []float64{1}},
		{"empty filter means all", "/api/contests?filter=", []float64{1, 2, 3}},
		{"all", "/api/contests?filter=all", []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeAPI{contests: sampleContests()})
			rec, body := get(t, s, tt.target)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if body["status"] != "success" {
				t.Errorf("status = %v, want success", body["status"])
			}
			if got := body["count"]; got != float64(len(tt.wantIDs)) {
				t.Errorf("count = %v, want %d", got, len(tt.wantIDs))
			}
			contests := body["contests"].([]any)
			for i, c := range contests {
				id := c.(map[string]any)["id"]
				if id != tt.wantIDs[i] {
					t.Errorf("contests[%d].id = %v, want %v", i, id, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestContestsIncludeGym(t *testing.T) {
	api := &fakeAPI{contests: []model.Contest{
		{ID: 100001, Name: "Gym Training", Type: model.ContestTypeGym, Phase: model.PhaseBefore, StartTimeSeconds: at(1700003000)},
	}}
	s := newTestServer(api)

	_, body := get(t, s, "/api/contests?filter=all&include_gym=true")
	if !api.gymArg {
		t.Error("ContestList gym = false, want true")
	}
	if got := body["count"]; got != float64(1) {
		t.Errorf("count = %v, want 1", got)
	}

	_, body = get(t, s, "/api/contests?filter=all")
	if got := body["count"]; got != float64(0) {
		t.Errorf("count = %v, want 0", got)
	}
}

func TestContestsError(t *testing.T) {
	s := newTestServer(&fakeAPI{contestsErr: &codeforces.NetworkError{Method: "contest.list", Err: errors.New("dial")}})
	rec, body := get(t, s, "/api/contests")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if body["status"] != "error" {
		t.Errorf("status = %v, want error", body["status"])
	}
}

func TestStats(t *testing.T) {
	api := &fakeAPI{
		users: []model.User{{Handle: "tourist", Rating: 3800, MaxRating: 4000, Rank: "legendary grandmaster", MaxRank: "legendary grandmaster"}},
		subs: []model.Submission{
			{ID: 1, Problem: model.Problem{ContestID: 1900, Index: "A"}, Verdict: model.VerdictOK, CreationTimeSeconds: 1699990000},
			{ID: 2, Problem: model.Problem{ContestID: 1900, Index: "A"}, Verdict: model.VerdictOK},
			{ID: 3, Problem: model.Problem{ContestID: 1900, Index: "B"}, Verdict: "WRONG_ANSWER"},
		},
	}
	for i := 0; i < 12; i++ {
		api.rating = append(api.rating, model.RatingChange{ContestID: i + 1, OldRating: 1500 + i, NewRating: 1501 + i})
	}
	s := newTestServer(api)

	rec, body := get(t, s, "/api/stats?handle=tourist")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if api.statusCount != StatsSubmissions {
		t.Errorf("UserStatus count = %d, want %d", api.statusCount, StatsSubmissions)
	}

	user := body["user"].(map[string]any)
	if user["handle"] != "tourist" || user["rating"] != float64(3800) {
		t.Errorf("user = %v", user)
	}

	stats := body["stats"].(map[string]any)
	if got := stats["solvedCount"]; got != float64(1) {
		t.Errorf("solvedCount = %v, want 1", got)
	}
	if got := stats["recentSubmissions"]; got != float64(3) {
		t.Errorf("recentSubmissions = %v, want 3", got)
	}
	if got := stats["ratingChanges"]; got != float64(12) {
		t.Errorf("ratingChanges = %v, want 12", got)
	}

	history := body["ratingHistory"].([]any)
	if len(history) != StatsRatingHistory {
		t.Fatalf("len(ratingHistory) = %d, want %d", len(history), StatsRatingHistory)
	}
	if first := history[0].(map[string]any)["contestId"]; first != float64(3) {
		t.Errorf("ratingHistory[0].contestId = %v, want 3", first)
	}

	recent := body["recentSubmissions"].([]any)
	if got := recent[0].(map[string]any)["problem"]; got != "1900A" {
		t.Errorf("recentSubmissions[0].problem = %v, want 1900A", got)
	}
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		api        *fakeAPI
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "stats missing handle",
			target:     "/api/stats",
			api:        &fakeAPI{},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "handle parameter required",
		},
		{
			name:       "user missing handle",
			target:     "/api/user?handle=",
			api:        &fakeAPI{},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "handle parameter required",
		},
		{
			name:       "user empty result",
			target:     "/api/user?handle=ghost",
			api:        &fakeAPI{},
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name:   "stats api not found",
			target: "/api/stats?handle=ghost",
			api: &fakeAPI{userErr: &codeforces.APIError{
				Method:  "user.info",
				Comment: "handles: User with handle ghost not found",
			}},
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name:       "user network error",
			target:     "/api/user?handle=tourist",
			api:        &fakeAPI{userErr: &codeforces.NetworkError{Method: "user.info", Err: errors.New("timeout")}},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "stats submissions error",
			target: "/api/stats?handle=tourist",
			api: &fakeAPI{
				users:   []model.User{{Handle: "tourist"}},
				subsErr: errors.New("boom"),
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, newTestServer(tt.api), tt.target)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body["status"] != "error" {
				t.Errorf("status = %v, want error", body["status"])
			}
			if tt.wantMsg != "" && body["message"] != tt.wantMsg {
				t.Errorf("message = %v, want %v", body["message"], tt.wantMsg)
			}
		})
	}
}

func TestUser(t *testing.T) {
	api := &fakeAPI{users: []model.User{{Handle: "tourist", Rank: "unrated", MaxRank: "unrated", Country: "Belarus", FriendOfCount: 5}}}
	rec, body := get(t, newTestServer(api), "/api/user?handle=tourist")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	user := body["user"].(map[string]any)
	if user["country"] != "Belarus" {
		t.Errorf("country = %v, want Belarus", user["country"])
	}
	if user["friendOfCount"] != float64(5) {
		t.Errorf("friendOfCount = %v, want 5", user["friendOfCount"])
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakeAPI{})

	req := httptest.NewRequest(http.MethodOptions, "/api/contests", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestIndexAndHealth(t *testing.T) {
	snap := feed.Snapshot{Contests: sampleContests()[:2], FetchedAt: testNow}
	s := newTestServer(&fakeAPI{}, WithFeed(&fakeFeed{latest: &snap}))

	rec, _ := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Codeforces Dashboard") {
		t.Error("index page missing title")
	}

	rec, body := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["upcoming"] != float64(2) {
		t.Errorf("upcoming = %v, want 2", body["upcoming"])
	}
}

func TestLiveDisabled(t *testing.T) {
	rec, _ := get(t, newTestServer(&fakeAPI{}), "/api/live")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestLive(t *testing.T) {
	ff := &fakeFeed{ch: make(chan feed.Snapshot, 1)}
	s := newTestServer(&fakeAPI{}, WithFeed(ff))

	server := httptest.NewServer(s.Handler())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	ff.ch <- feed.Snapshot{Contests: sampleContests()[:2], FetchedAt: testNow}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg liveMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if msg.Type != "contests" {
		t.Errorf("Type = %q, want contests", msg.Type)
	}
	if msg.Count != 2 || len(msg.Contests) != 2 {
		t.Errorf("Count = %d, want 2", msg.Count)
	}
	if !msg.FetchedAt.Equal(testNow) {
		t.Errorf("FetchedAt = %v, want %v", msg.FetchedAt, testNow)
	}

	close(ff.ch)
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadMessage error = %v, want going away close", err)
	}
}

func TestSettings(t *testing.T) {
	s := newTestServer(&fakeAPI{}, WithHandles("tourist", "petr"), WithDefaultFilter("div3, div2"))
	rec, body := get(t, s, "/api/settings")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := body["filter"]; got != "div2,div3" {
		t.Errorf("filter = %v, want div2,div3", got)
	}
	if got := body["handles"].([]any); len(got) != 2 || got[0] != "tourist" {
		t.Errorf("handles = %v, want [tourist petr]", got)
	}
}
