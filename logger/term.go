package logger

import (
	"io"
	"os"
	"strings"
)

// TermCaps answers capability questions about the attached terminal. The
// logger core and the banner only talk to this interface; the platform and
// environment sniffing lives in envTermCaps so tests can substitute a fixed
// answer.
type TermCaps interface {
	// IsTerminal reports whether w is attached to an interactive terminal.
	IsTerminal(w io.Writer) bool
	// ColorEnabled resolves NO_COLOR / VIX_COLOR against the terminal state
	// of w. Default is on when w is a terminal.
	ColorEnabled(w io.Writer) bool
	// HyperlinksEnabled reports whether OSC-8 hyperlinks are safe to emit,
	// based on a terminal-program allowlist.
	HyperlinksEnabled(w io.Writer) bool
}

// Caps is the process-wide capability detector. Swap it for a fixture in
// tests that need deterministic color decisions.
var Caps TermCaps = envTermCaps{}

type envTermCaps struct{}

func (envTermCaps) IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func (c envTermCaps) ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch strings.ToLower(os.Getenv("VIX_COLOR")) {
	case "never", "0", "false":
		return false
	case "always", "1", "true":
		return true
	}
	return c.IsTerminal(w)
}

func (c envTermCaps) HyperlinksEnabled(w io.Writer) bool {
	if os.Getenv("VIX_NO_HYPERLINK") != "" {
		return false
	}
	if !c.IsTerminal(w) {
		return false
	}
	// Terminals known to render OSC-8 sanely.
	for _, key := range []string{"VSCODE_PID", "WT_SESSION", "WEZTERM_EXECUTABLE", "KITTY_WINDOW_ID", "VTE_VERSION"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "Apple_Terminal", "WezTerm", "vscode":
		return true
	}
	// tmux/screen mangle OSC sequences more often than not.
	if strings.Contains(os.Getenv("TERM"), "screen") {
		return false
	}
	return false
}
