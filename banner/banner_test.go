package banner

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vixlabs/vixutil/logger"
)

// fixedCaps pins the capability answers so tests do not depend on the
// terminal the suite runs under.
type fixedCaps struct {
	color bool
	links bool
}

func (c fixedCaps) IsTerminal(io.Writer) bool        { return c.color }
func (c fixedCaps) ColorEnabled(io.Writer) bool      { return c.color }
func (c fixedCaps) HyperlinksEnabled(io.Writer) bool { return c.links }

func withCaps(t *testing.T, caps logger.TermCaps) {
	t.Helper()
	orig := logger.Caps
	logger.Caps = caps
	t.Cleanup(func() { logger.Caps = orig })
}

func TestEmitPlain(t *testing.T) {
	withCaps(t, fixedCaps{})

	var buf bytes.Buffer
	EmitTo(&buf, Info{
		App:        "vix",
		Version:    "Vix v1.16.1",
		ReadyMS:    42,
		Mode:       "run",
		Status:     "ready",
		ConfigPath: "/etc/vix/config.yaml",
		ShowWS:     true,
		ShowHints:  true,
		Threads:    4,
		MaxThreads: 8,
	})
	out := buf.String()

	for _, want := range []string{
		"[vix]",
		"READY",
		"Vix v1.16.1",
		"(42 ms)",
		"[run]",
		"HTTP:",
		"http://localhost:8080/",
		"WS:",
		"ws://localhost:9090",
		"Config:",
		"/etc/vix/config.yaml",
		"Threads:",
		"4/8",
		"Mode:",
		"Status:",
		"Ctrl+C to stop the server",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("plain banner contains ANSI escapes:\n%q", out)
	}
}

func TestEmitDefaults(t *testing.T) {
	withCaps(t, fixedCaps{})

	var buf bytes.Buffer
	EmitTo(&buf, Info{ReadyMS: -1})
	out := buf.String()

	if !strings.Contains(out, "[vix]") || !strings.Contains(out, "READY") {
		t.Errorf("defaults not applied:\n%s", out)
	}
	if !strings.Contains(out, "http://localhost:8080/") {
		t.Errorf("default endpoint missing:\n%s", out)
	}
	if strings.Contains(out, "ms)") {
		t.Errorf("negative ReadyMS must hide the timing:\n%s", out)
	}
	if strings.Contains(out, "WS:") || strings.Contains(out, "Hint:") {
		t.Errorf("disabled rows leaked:\n%s", out)
	}
}

func TestEmitColored(t *testing.T) {
	withCaps(t, fixedCaps{color: true})

	var buf bytes.Buffer
	EmitTo(&buf, Info{Status: "ready", ReadyMS: -1})
	out := buf.String()

	if !strings.Contains(out, "\033[48;5;34m") {
		t.Errorf("READY pill missing green background:\n%q", out)
	}
	if !strings.Contains(out, "\033[0m") {
		t.Errorf("colored banner never resets:\n%q", out)
	}
}

func TestStatusPillColors(t *testing.T) {
	tests := []struct {
		status string
		bg     string
	}{
		{"ready", "\033[48;5;34m"},
		{"running", "\033[48;5;35m"},
		{"listening", "\033[48;5;35m"},
		{"warn", "\033[48;5;214m"},
		{"error", "\033[48;5;196m"},
		{"failed", "\033[48;5;196m"},
	}
	withCaps(t, fixedCaps{color: true})
	for _, tt := range tests {
		var buf bytes.Buffer
		EmitTo(&buf, Info{Status: tt.status, ReadyMS: -1})
		if !strings.Contains(buf.String(), tt.bg+"\033[30m "+strings.ToUpper(tt.status)+" ") {
			t.Errorf("status %q: pill missing %q:\n%q", tt.status, tt.bg, buf.String())
		}
	}
}

func TestHyperlinks(t *testing.T) {
	withCaps(t, fixedCaps{color: true, links: true})

	var buf bytes.Buffer
	EmitTo(&buf, Info{ReadyMS: -1})
	if !strings.Contains(buf.String(), "\033]8;;http://localhost:8080/\033\\") {
		t.Errorf("OSC-8 link missing:\n%q", buf.String())
	}

	withCaps(t, fixedCaps{color: true})
	buf.Reset()
	EmitTo(&buf, Info{ReadyMS: -1})
	if strings.Contains(buf.String(), "\033]8;;") {
		t.Errorf("OSC-8 link emitted without terminal support:\n%q", buf.String())
	}
}

func TestModeFromEnv(t *testing.T) {
	tests := []struct {
		val  string
		want string
	}{
		{"", "run"},
		{"run", "run"},
		{"dev", "dev"},
		{"DEV", "dev"},
		{"watch", "dev"},
		{"reload", "dev"},
		{"production", "run"},
	}
	for _, tt := range tests {
		t.Setenv("VIX_MODE", tt.val)
		if got := ModeFromEnv(); got != tt.want {
			t.Errorf("VIX_MODE=%q: got %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestLocalTime12h(t *testing.T) {
	tests := []struct {
		h, m, s int
		want    string
	}{
		{0, 5, 9, "12:05:09 AM"},
		{9, 30, 0, "9:30:00 AM"},
		{12, 0, 0, "12:00:00 PM"},
		{15, 4, 5, "3:04:05 PM"},
		{23, 59, 59, "11:59:59 PM"},
	}
	for _, tt := range tests {
		ts := time.Date(2026, 8, 28, tt.h, tt.m, tt.s, 0, time.Local)
		if got := localTime12h(ts); got != tt.want {
			t.Errorf("localTime12h(%02d:%02d:%02d) = %q, want %q", tt.h, tt.m, tt.s, got, tt.want)
		}
	}
}

func TestEmitBlocksSynchronizedLogWrites(t *testing.T) {
	withCaps(t, fixedCaps{})

	var console bytes.Buffer
	l := logger.New(logger.Options{
		Sinks:       []logger.Sink{logger.NewConsoleSink(&console, func() bool { return true })},
		ConsoleSync: true,
		Fallback:    &bytes.Buffer{},
	})

	var bannerOut bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Infof("after banner")
	}()
	EmitTo(&bannerOut, Info{ReadyMS: -1})
	wg.Wait()

	if console.String() != "after banner\n" {
		t.Errorf("console = %q", console.String())
	}
	if bannerOut.Len() == 0 {
		t.Error("banner never emitted")
	}
}
