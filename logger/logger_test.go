package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

// countingSink records every line it is handed.
type countingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *countingSink) Write(_ Level, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

func (s *countingSink) Close() error { return nil }

func (s *countingSink) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func newTestLogger(opts Options) (*Logger, *countingSink) {
	sink := &countingSink{}
	opts.Sinks = []Sink{sink}
	if opts.Fallback == nil {
		opts.Fallback = &bytes.Buffer{}
	}
	return New(opts), sink
}

func TestLevelGating(t *testing.T) {
	l, sink := newTestLogger(Options{Level: LevelWarn})

	l.Tracef("t")
	l.Debugf("d")
	l.Infof("i")
	l.Warnf("w")
	l.Errorf("e")
	l.Criticalf("c")

	got := sink.all()
	want := []string{"w", "e", "c"}
	if len(got) != len(want) {
		t.Fatalf("wrote %d lines %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOffSuppressesEverything(t *testing.T) {
	l, sink := newTestLogger(Options{Level: LevelOff})

	l.Criticalf("the house is on fire")
	l.CriticalKV("still on fire", "floor", 3)

	if got := sink.all(); len(got) != 0 {
		t.Errorf("Off level wrote %v", got)
	}
}

func TestSetLevelAtRuntime(t *testing.T) {
	l, sink := newTestLogger(Options{Level: LevelError})

	l.Infof("dropped")
	l.SetLevel(LevelDebug)
	l.Debugf("kept")

	got := sink.all()
	if len(got) != 1 || got[0] != "kept" {
		t.Errorf("lines = %v, want [kept]", got)
	}
	if !l.Enabled(LevelDebug) || l.Enabled(LevelTrace) {
		t.Error("Enabled disagrees with SetLevel")
	}
}

func TestFormatPlaceholders(t *testing.T) {
	l, sink := newTestLogger(Options{})

	l.Infof("Hello %s", "World")

	got := sink.all()
	if len(got) != 1 || got[0] != "Hello World" {
		t.Errorf("lines = %v, want [Hello World]", got)
	}
}

func TestFormatSwitchAtRuntime(t *testing.T) {
	l, sink := newTestLogger(Options{})

	l.Infof("plain")
	l.SetFormat(FormatJSON)
	l.Infof("structured")

	got := sink.all()
	if len(got) != 2 {
		t.Fatalf("lines = %v", got)
	}
	if got[0] != "plain" {
		t.Errorf("kv line = %q", got[0])
	}
	if got[1] != `{"level":"info","msg":"structured"}` {
		t.Errorf("json line = %q", got[1])
	}
}

func TestKVWithContextJSON(t *testing.T) {
	l, sink := newTestLogger(Options{Format: FormatJSON})
	t.Cleanup(ClearContext)

	l.SetContext(Context{RequestID: "req-7", Module: "auth"})
	l.InfoKV("login ok", "user", "ada", "latency_ms", 12)

	got := sink.all()
	want := `{"level":"info","msg":"login ok","rid":"req-7","mod":"auth","user":"ada","latency_ms":12}`
	if len(got) != 1 || got[0] != want {
		t.Errorf("lines = %v, want [%s]", got, want)
	}
}

func TestLogModulePrefix(t *testing.T) {
	l, sink := newTestLogger(Options{})

	l.LogModule("router", LevelInfo, "mounted %d routes", 4)

	got := sink.all()
	if len(got) != 1 || got[0] != "[router] mounted 4 routes" {
		t.Errorf("lines = %v", got)
	}
}

func TestFailf(t *testing.T) {
	l, sink := newTestLogger(Options{})

	err := l.Failf("open %s: %s", "conf.yaml", "permission denied")
	if err == nil || err.Error() != "open conf.yaml: permission denied" {
		t.Fatalf("err = %v", err)
	}
	got := sink.all()
	if len(got) != 1 || got[0] != "open conf.yaml: permission denied" {
		t.Errorf("lines = %v", got)
	}
}

func TestFailfReturnsErrorEvenWhenGated(t *testing.T) {
	l, sink := newTestLogger(Options{Level: LevelOff})

	err := l.Failf("quiet failure")
	if err == nil || err.Error() != "quiet failure" {
		t.Fatalf("err = %v", err)
	}
	if got := sink.all(); len(got) != 0 {
		t.Errorf("gated Failf wrote %v", got)
	}
}

type panickyValue struct{}

func (panickyValue) String() string { panic("bad stringer") }

func TestEncodePanicContained(t *testing.T) {
	var diag bytes.Buffer
	l, sink := newTestLogger(Options{Fallback: &diag})

	l.InfoKV("survives", "v", panickyValue{})

	got := sink.all()
	if len(got) != 1 || got[0] != "survives (encoding error)" {
		t.Errorf("lines = %v", got)
	}
	if !strings.Contains(diag.String(), "encode") {
		t.Errorf("fallback diagnostics missing: %q", diag.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvConsoleSync, "1")

	l := FromEnv()
	defer l.Close()

	if l.Level() != LevelDebug {
		t.Errorf("Level() = %v", l.Level())
	}
	if l.FormatNow() != FormatJSON {
		t.Errorf("FormatNow() = %v", l.FormatNow())
	}
}

func TestLevelFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvLevel, "")
	if got := levelFromEnv(); got != LevelInfo {
		t.Errorf("unset level = %v, want info", got)
	}
	t.Setenv(EnvLevel, "garbage")
	if got := levelFromEnv(); got != LevelWarn {
		t.Errorf("bad level = %v, want warn", got)
	}
}

func TestConsoleSyncFromEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv(EnvConsoleSync, tt.val)
		if got := consoleSyncFromEnv(); got != tt.want {
			t.Errorf("VIX_CONSOLE_SYNC=%q: got %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	l, _ := newTestLogger(Options{})
	if err := l.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
