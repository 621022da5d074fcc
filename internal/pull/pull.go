// Package pull sets up a local workspace for a contest: one directory per
// problem with the sample tests and a solution template.
package pull

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rodriguescarson/cfkit/internal/codeforces"
)

// SiteURL is the Codeforces web root.
const SiteURL = "https://codeforces.com"

// File names inside a problem directory.
const (
	InputFile    = "in.txt"
	OutputFile   = "out.txt"
	SolutionFile = "main.cpp"
)

// DefaultTemplate is written to main.cpp when no template file is set.
const DefaultTemplate = `#include <iostream>
#include <vector>
#include <string>
#include <algorithm>
#include <cmath>
#include <set>
#include <map>
#include <unordered_map>
#include <unordered_set>
#include <queue>
#include <stack>
using namespace std;

int main() {
    ios_base::sync_with_stdio(false);
    cin.tie(NULL);

    return 0;
}
`

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// StandingsAPI returns a contest's problem list.
type StandingsAPI interface {
	ContestStandings(ctx context.Context, contestID, from, count int, handles ...string) (*codeforces.Standings, error)
}

// ProblemResult reports what was written for one problem.
type ProblemResult struct {
	Index           string
	Name            string
	Dir             string
	Samples         int
	TemplateCreated bool
	Err             error // sample download failure; the directory still exists
}

// Result reports a pull.
type Result struct {
	ContestID int
	Dir       string
	Problems  []ProblemResult
}

// Puller downloads contests.
type Puller struct {
	api        StandingsAPI
	httpClient *http.Client
	siteURL    string
	dir        string
	template   string
	logger     *slog.Logger
}

// Option configures a Puller.
type Option func(*Puller)

// WithSiteURL sets the web root used for problem pages.
func WithSiteURL(u string) Option {
	return func(p *Puller) { p.siteURL = strings.TrimRight(u, "/") }
}

// WithTemplate sets the solution template content.
func WithTemplate(content string) Option {
	return func(p *Puller) { p.template = content }
}

// WithHTTPClient sets the client for problem pages.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Puller) { p.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Puller) { p.logger = logger }
}

// New returns a Puller that writes under dir.
func New(api StandingsAPI, dir string, opts ...Option) *Puller {
	jar, _ := cookiejar.New(nil)
	p := &Puller{
		api:        api,
		httpClient: &http.Client{Timeout: 10 * time.Second, Jar: jar},
		siteURL:    SiteURL,
		dir:        dir,
		template:   DefaultTemplate,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// LoadTemplate reads a template file.
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}

// Pull creates {dir}/{contestID}/{index}/ for every problem with in.txt,
// out.txt and main.cpp. An existing main.cpp is never overwritten.
func (p *Puller) Pull(ctx context.Context, contestID int) (*Result, error) {
	standings, err := p.api.ContestStandings(ctx, contestID, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch problems of contest %d: %w", contestID, err)
	}
	if len(standings.Problems) == 0 {
		return nil, fmt.Errorf("contest %d has no problems", contestID)
	}

	res := &Result{
		ContestID: contestID,
		Dir:       filepath.Join(p.dir, strconv.Itoa(contestID)),
	}
	if err := os.MkdirAll(res.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create contest dir: %w", err)
	}

	// Codeforces hands out session cookies on the contest page.
	p.visit(ctx, fmt.Sprintf("%s/contest/%d", p.siteURL, contestID))

	for _, prob := range standings.Problems {
		if prob.Index == "" {
			continue
		}
		pr, err := p.pullProblem(ctx, contestID, res.Dir, prob.Index)
		if err != nil {
			return res, err
		}
		pr.Name = prob.Name
		res.Problems = append(res.Problems, pr)

		p.logger.Info("pulled problem",
			"contest_id", contestID,
			"index", prob.Index,
			"samples", pr.Samples,
		)
	}
	return res, nil
}

func (p *Puller) pullProblem(ctx context.Context, contestID int, contestDir, index string) (ProblemResult, error) {
	pr := ProblemResult{Index: index, Dir: filepath.Join(contestDir, index)}
	if err := os.MkdirAll(pr.Dir, 0o755); err != nil {
		return pr, fmt.Errorf("create problem dir: %w", err)
	}

	samples, err := p.fetchSamples(ctx, contestID, index)
	if err != nil {
		pr.Err = err
		p.logger.Warn("no sample tests",
			"contest_id", contestID,
			"index", index,
			"error", err,
		)
	}
	if len(samples) > 0 {
		if err := writeSamples(pr.Dir, samples); err != nil {
			return pr, err
		}
		pr.Samples = len(samples)
	}

	created, err := writeIfAbsent(filepath.Join(pr.Dir, SolutionFile), p.template)
	if err != nil {
		return pr, err
	}
	pr.TemplateCreated = created
	return pr, nil
}

func (p *Puller) fetchSamples(ctx context.Context, contestID int, index string) ([]Sample, error) {
	url := fmt.Sprintf("%s/contest/%d/problem/%s", p.siteURL, contestID, index)
	resp, err := p.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	samples, err := ParseSamples(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no sample tests on %s", url)
	}
	return samples, nil
}

func (p *Puller) visit(ctx context.Context, url string) {
	resp, err := p.get(ctx, url)
	if err != nil {
		p.logger.Debug("contest page visit failed", "url", url, "error", err)
		return
	}
	resp.Body.Close()
}

func (p *Puller) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	return p.httpClient.Do(req)
}

func writeSamples(dir string, samples []Sample) error {
	inputs := make([]string, len(samples))
	outputs := make([]string, len(samples))
	for i, s := range samples {
		inputs[i] = s.Input
		outputs[i] = s.Output
	}
	if err := os.WriteFile(filepath.Join(dir, InputFile), []byte(strings.Join(inputs, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", InputFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, OutputFile), []byte(strings.Join(outputs, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", OutputFile, err)
	}
	return nil
}

// writeIfAbsent creates path with content unless it already exists.
func writeIfAbsent(path, content string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return false, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return true, f.Close()
}
