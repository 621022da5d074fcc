package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rodriguescarson/cfkit/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Width(12)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var (
	printer   = message.NewPrinter(language.English)
	titleCase = cases.Title(language.English)
)

const ruleWidth = 50

// FormatRating renders a rating with its title, e.g. "1650 (Expert)".
func FormatRating(rating int) string {
	return fmt.Sprintf("%d (%s)", rating, model.RatingTitle(rating))
}

// FormatDelta renders a rating change with an explicit sign.
func FormatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

// Render writes the report to w.
func Render(w io.Writer, s *Stats) error {
	var b strings.Builder

	section(&b, "Codeforces Statistics: "+s.Handle)

	section(&b, "User Information")
	switch {
	case s.UserErr != nil:
		fmt.Fprintf(&b, "%s\n", badStyle.Render("Error: "+s.UserErr.Error()))
	case s.User == nil:
		fmt.Fprintln(&b, dimStyle.Render("User not found."))
	default:
		u := s.User
		field(&b, "Handle", u.Handle)
		field(&b, "Rating", FormatRating(u.Rating))
		field(&b, "Max Rating", FormatRating(u.MaxRating))
		field(&b, "Rank", titleCase.String(u.Rank))
		field(&b, "Max Rank", titleCase.String(u.MaxRank))
		if u.Organization != "" {
			field(&b, "Org", u.Organization)
		}
		if u.Country != "" {
			field(&b, "Country", u.Country)
		}
		if u.Contribution != 0 {
			field(&b, "Contrib", FormatDelta(u.Contribution))
		}
	}

	section(&b, "Solved Problems")
	if s.TotalSolved == 0 {
		fmt.Fprintln(&b, dimStyle.Render("No solved problems found. Run `cfkit sync` first."))
	} else {
		field(&b, "Total", printer.Sprintf("%d", s.TotalSolved))
		if len(s.ByContest) > 0 {
			fmt.Fprintln(&b, "\nProblems by Contest:")
			for _, c := range s.ByContest {
				fmt.Fprintf(&b, "  Contest %d: %d problems\n", c.ContestID, c.Solved)
			}
			if s.MoreContests > 0 {
				fmt.Fprintf(&b, "  ... and %d more contests\n", s.MoreContests)
			}
		}
	}

	section(&b, "Rating History")
	if r := s.Rating; r == nil {
		fmt.Fprintln(&b, dimStyle.Render("No rating history found. Run `cfkit sync` first."))
	} else {
		field(&b, "Contests", fmt.Sprintf("%d", r.Contests))
		field(&b, "Current", FormatRating(r.Current))
		fmt.Fprintln(&b, "\nRecent Rating Changes:")
		for _, c := range r.Recent {
			delta := FormatDelta(c.Delta())
			style := okStyle
			if c.Delta() < 0 {
				style = badStyle
			}
			fmt.Fprintf(&b, "  %s: %d → %d (%s)\n", c.ContestName, c.OldRating, c.NewRating, style.Render(delta))
		}
		if r.Contests > 1 {
			fmt.Fprintln(&b, "\nStatistics:")
			fmt.Fprintf(&b, "  Highest: %s\n", FormatRating(r.Highest))
			fmt.Fprintf(&b, "  Lowest:  %s\n", FormatRating(r.Lowest))
			fmt.Fprintf(&b, "  Average: %d\n", r.Average)
		}
	}

	section(&b, "Recent Activity")
	switch {
	case s.RecentErr != nil:
		fmt.Fprintf(&b, "%s\n", badStyle.Render("Error fetching recent activity: "+s.RecentErr.Error()))
	case len(s.Recent) == 0:
		fmt.Fprintln(&b, dimStyle.Render("No recent submissions found."))
	default:
		fmt.Fprintf(&b, "Last %d submissions:\n", len(s.Recent))
		for _, sub := range s.Recent {
			icon := badStyle.Render("✗")
			if sub.Accepted() {
				icon = okStyle.Render("✓")
			}
			verdict := string(sub.Verdict)
			if verdict == "" {
				verdict = "UNKNOWN"
			}
			when := "Unknown"
			if sub.CreationTimeSeconds > 0 {
				when = time.Unix(sub.CreationTimeSeconds, 0).Format("2006-01-02 15:04")
			}
			fmt.Fprintf(&b, "  %s %s: %s\n", icon, sub.Problem.Key(), truncate(sub.Problem.Name, 40))
			fmt.Fprintf(&b, "    Verdict: %s | Time: %s\n", verdict, when)
		}
	}

	section(&b, "Weekly Statistics")
	if s.LastSync != nil {
		field(&b, "Last Sync", s.LastSync.Local().Format("2006-01-02 15:04:05"))
	}
	if s.Rating != nil {
		field(&b, "This week", fmt.Sprintf("%d contests", s.ContestsThisWeek))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(headerStyle.Render(title) + "\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("=", ruleWidth)) + "\n")
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label+":") + value + "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
