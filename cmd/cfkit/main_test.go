package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rodriguescarson/cfkit/internal/config"
	"github.com/rodriguescarson/cfkit/internal/store"
)

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// setupEnv points the CLI at a fake API and a temporary data directory.
func setupEnv(t *testing.T, apiURL string) string {
	t.Helper()
	dataDir := t.TempDir()
	t.Setenv("CF_API_URL", apiURL)
	t.Setenv("CF_DATA_DIR", dataDir)
	t.Setenv("CF_PRACTICE_LOG", filepath.Join(dataDir, "practice_log.txt"))
	t.Setenv("NOTIFY_SINKS", "log")
	t.Setenv("CONTEST_FILTER", "all")
	t.Setenv("REMINDER_TIMES", "")
	t.Setenv("CF_USERNAME", "")
	t.Setenv("KEY", "")
	t.Setenv("SECRET", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("ARCHIVE_DB_HOST", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	return dataDir
}

func contestListServer(t *testing.T, start int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contest.list" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"status":"FAILED","comment":"unexpected method"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"OK","result":[
			{"id":2000,"name":"Codeforces Round 2000 (Div. 2)","type":"CF","phase":"BEFORE","startTimeSeconds":%d,"durationSeconds":7200},
			{"id":1999,"name":"Codeforces Round 1999 (Div. 2)","type":"CF","phase":"FINISHED","startTimeSeconds":1600000000,"durationSeconds":7200}
		]}`, start)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "cfkit ") {
		t.Errorf("output = %q, want prefix %q", out, "cfkit ")
	}
}

func TestRemindCmd(t *testing.T) {
	start := time.Now().Add(time.Hour).Unix()
	server := contestListServer(t, start)
	dataDir := setupEnv(t, server.URL)

	out, err := runCLI(t, "remind")
	if err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if !strings.Contains(out, "Upcoming contests (1)") {
		t.Errorf("output missing upcoming list:\n%s", out)
	}
	if !strings.Contains(out, "Sent 60m reminder for Codeforces Round 2000 (Div. 2)") {
		t.Errorf("output missing sent reminder:\n%s", out)
	}

	ledger, err := store.Load[store.Ledger](filepath.Join(dataDir, store.LedgerFile))
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if got := ledger["2000"]; len(got) != 1 || got[0] != "60m" {
		t.Errorf("ledger[2000] = %v, want [60m]", got)
	}

	// A second run in the same window sends nothing.
	out, err = runCLI(t, "remind")
	if err != nil {
		t.Fatalf("second remind failed: %v", err)
	}
	if !strings.Contains(out, "No reminders due.") {
		t.Errorf("second run output:\n%s", out)
	}
}

func TestRemindCmdFilterFlag(t *testing.T) {
	server := contestListServer(t, time.Now().Add(time.Hour).Unix())
	setupEnv(t, server.URL)

	out, err := runCLI(t, "remind", "--filter", "div1")
	if err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if !strings.Contains(out, "No upcoming contests match the filter.") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRemindCmdAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	setupEnv(t, server.URL)

	if _, err := runCLI(t, "remind"); err == nil {
		t.Fatal("remind error = nil, want error")
	}
}

func TestRemindCmdLedgerWriteFailure(t *testing.T) {
	server := contestListServer(t, time.Now().Add(time.Hour).Unix())
	setupEnv(t, server.URL)

	// A regular file where the data directory should be.
	blocker := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CF_DATA_DIR", blocker)

	_, err := runCLI(t, "remind")
	if !store.IsPersistenceError(err) {
		t.Errorf("error = %v, want PersistenceError", err)
	}
}

func TestCommandsRequireHandle(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")

	for _, name := range []string{"sync", "stats"} {
		t.Run(name, func(t *testing.T) {
			_, err := runCLI(t, name)
			if !config.IsConfigError(err) {
				t.Errorf("error = %v, want ConfigError", err)
			}
		})
	}
}

func TestPullCmdInvalidID(t *testing.T) {
	if _, err := runCLI(t, "pull", "abc"); err == nil {
		t.Fatal("pull error = nil, want error")
	}
}

func TestNotifyCmd(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")

	out, err := runCLI(t, "notify", "hello", "world")
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out, "Notification sent.") {
		t.Errorf("output = %q", out)
	}
}
