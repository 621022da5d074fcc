package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/rodriguescarson/cfkit/internal/model"
	"github.com/rodriguescarson/cfkit/internal/progress"
)

var snap = progress.Snapshot{
	Handle:   "tourist",
	SyncedAt: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	Submissions: []model.Submission{
		{Problem: model.Problem{ContestID: 1, Index: "A", Name: "Theatre Square", Rating: 1000}, Verdict: model.VerdictOK},
		{Problem: model.Problem{ContestID: 2, Index: "B", Name: "Hard One", Rating: 2400}, Verdict: model.VerdictOK},
	},
	NewSolved: []string{"1A", "2B"},
}

func TestRows(t *testing.T) {
	want := [][]interface{}{
		{"2024-03-04", "tourist", "1A", "Theatre Square", 1000, "easy"},
		{"2024-03-04", "tourist", "2B", "Hard One", 2400, "hard"},
	}
	if got := Rows(snap); !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %v, want %v", got, want)
	}

	if got := Rows(progress.Snapshot{}); len(got) != 0 {
		t.Errorf("Rows(empty) = %v, want none", got)
	}
}

func TestExport(t *testing.T) {
	var gotPath string
	var body struct {
		Values [][]interface{} `json:"values"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if got := r.URL.Query().Get("valueInputOption"); got != "RAW" {
			t.Errorf("valueInputOption = %q, want RAW", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	e, err := NewWithOptions(context.Background(), "sheet-id", "Progress",
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}

	if err := e.Export(context.Background(), snap); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(gotPath, "/spreadsheets/sheet-id/values/Progress!A:Z:append") {
		t.Errorf("path = %q, want append on Progress!A:Z", gotPath)
	}
	if len(body.Values) != 2 {
		t.Errorf("rows = %d, want 2", len(body.Values))
	}
}

func TestNewMissingCredentials(t *testing.T) {
	if _, err := New(context.Background(), "/does/not/exist.json", "id", "Progress"); err == nil {
		t.Fatal("New() error = nil, want error")
	}
}
