package progress

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rodriguescarson/cfkit/internal/model"
)

// practiceLogHeaderLines precede the entries in the practice log.
const practiceLogHeaderLines = 2

// AppendPracticeLog appends one line per solved problem that the log does not
// list yet and returns the problems added. The log is never created; when it
// does not exist nothing happens.
func AppendPracticeLog(path string, solved model.SolvedSet, subs []model.Submission, now time.Time) ([]string, error) {
	logged, err := readPracticeLog(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read practice log: %w", err)
	}

	added := solved.Minus(logged).Sorted()
	if len(added) == 0 {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open practice log: %w", err)
	}
	defer f.Close()

	problems := model.FirstAccepted(subs)
	w := bufio.NewWriter(f)
	for _, key := range added {
		fmt.Fprintf(w, "%s | %s | %s | %s | solved | %s\n",
			now.Format("2006-01-02"),
			now.Format("Monday"),
			key,
			model.Difficulty(problems[key].Rating),
			now.Format("15:04"),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("write practice log: %w", err)
	}
	return added, nil
}

// readPracticeLog returns the problem column of every entry line.
func readPracticeLog(path string) (model.SolvedSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	logged := model.SolvedSet{}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if i < practiceLogHeaderLines {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) > 2 {
			logged[strings.TrimSpace(parts[2])] = struct{}{}
		}
	}
	return logged, nil
}
