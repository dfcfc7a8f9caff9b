// Package popup implements menubar.Presenter.
package popup

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/automute/automute/internal/logging"
	"github.com/automute/automute/internal/menubar"
)

// New returns the AppleScript presenter on macOS and the log presenter
// elsewhere.
func New() menubar.Presenter {
	if runtime.GOOS == "darwin" {
		return NewAppleScript()
	}
	return NewLog()
}

// AppleScript shows dialogs with osascript.
type AppleScript struct {
	run func(script string) (string, error)
}

// NewAppleScript creates an osascript-backed presenter.
func NewAppleScript() *AppleScript {
	return &AppleScript{run: osascript}
}

func osascript(script string) (string, error) {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("osascript failed: %w, output: %s", err, strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

func (a *AppleScript) Inform(title, message string) error {
	_, err := a.run(dialogScript(title, message, "OK", "OK"))
	return err
}

func (a *AppleScript) Confirm(title, message, accept, decline string) (bool, error) {
	out, err := a.run(dialogScript(title, message, accept, decline, accept))
	if err != nil {
		return false, err
	}
	return buttonReturned(out) == accept, nil
}

// dialogScript builds a display dialog command. The last button is the
// default.
func dialogScript(title, message string, buttons ...string) string {
	quoted := make([]string, 0, len(buttons))
	seen := make(map[string]bool)
	for _, b := range buttons[:len(buttons)-1] {
		if seen[b] {
			continue
		}
		seen[b] = true
		quoted = append(quoted, quote(b))
	}
	return fmt.Sprintf("display dialog %s with title %s buttons {%s} default button %s with icon note",
		quote(message), quote(title), strings.Join(quoted, ", "), quote(buttons[len(buttons)-1]))
}

// buttonReturned extracts the label from "button returned:Label".
func buttonReturned(out string) string {
	for _, field := range strings.Split(out, ",") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(field), "button returned:"); ok {
			return v
		}
	}
	return ""
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Log writes popups to the log and declines every confirmation. Used where
// no dialog service is available.
type Log struct {
	log zerolog.Logger
}

// NewLog creates a log presenter.
func NewLog() *Log {
	return &Log{log: logging.WithComponent("popup")}
}

func (l *Log) Inform(title, message string) error {
	l.log.Info().Str("title", title).Msg(message)
	return nil
}

func (l *Log) Confirm(title, message, accept, decline string) (bool, error) {
	l.log.Info().Str("title", title).Str("answer", decline).Msg(message)
	return false, nil
}
