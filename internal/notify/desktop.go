package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// commandTimeout bounds the notifier process.
const commandTimeout = 5 * time.Second

// Desktop shows a native notification: osascript on macOS, notify-send on
// Linux. After a successful notification it opens the URL in the browser.
type Desktop struct {
	goos    string
	openURL bool
	logger  *slog.Logger

	run   func(ctx context.Context, name string, args ...string) error
	start func(name string, args ...string) error
}

// NewDesktop returns a sink for the current OS.
func NewDesktop(openURL bool, logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{
		goos:    runtime.GOOS,
		openURL: openURL,
		logger:  logger,
		run:     runCommand,
		start:   startCommand,
	}
}

// Send implements Sink.
func (d *Desktop) Send(ctx context.Context, n Notification) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	var (
		err    error
		opener string
	)
	switch d.goos {
	case "darwin":
		err = d.run(ctx, "osascript", "-e", appleScript(n))
		opener = "open"
	case "linux":
		err = d.run(ctx, "notify-send", linuxArgs(n)...)
		opener = "xdg-open"
	default:
		return fmt.Errorf("desktop notifications are not supported on %s", d.goos)
	}
	if err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}

	if d.openURL && n.URL != "" {
		if err := d.start(opener, n.URL); err != nil {
			d.logger.Warn("failed to open url", "url", n.URL, "error", err)
		}
	}
	return nil
}

func appleScript(n Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, `display notification "%s" with title "%s"`, escapeAppleScript(n.Message), escapeAppleScript(n.Title))
	if n.Subtitle != "" {
		fmt.Fprintf(&b, ` subtitle "%s"`, escapeAppleScript(n.Subtitle))
	}
	if n.Sound != "" {
		fmt.Fprintf(&b, ` sound name "%s"`, escapeAppleScript(n.Sound))
	}
	return b.String()
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeAppleScript(s string) string {
	return appleScriptEscaper.Replace(s)
}

func linuxArgs(n Notification) []string {
	body := n.Message
	if n.Subtitle != "" {
		body = n.Subtitle + "\n" + n.Message
	}
	return []string{"--app-name=cfkit", n.Title, body}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
