package logger

import (
	"regexp"
	"strings"
	"testing"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestPrettyEncoderShape(t *testing.T) {
	rec := Record{
		Level:   LevelInfo,
		Message: "login ok",
		Pairs:   []Pair{{"user", "ada"}, {"latency_ms", 12}},
		Ctx:     Context{RequestID: "req-1"},
	}
	got := prettyEncoder{}.Encode(rec)
	want := "{\n" +
		"  \"level\": \"info\",\n" +
		"  \"msg\": \"login ok\",\n" +
		"  \"rid\": \"req-1\",\n" +
		"  \"user\": \"ada\",\n" +
		"  \"latency_ms\": 12\n" +
		"}"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestPrettyColorNeverChangesStructure(t *testing.T) {
	recs := []Record{
		{Level: LevelInfo, Message: "hi"},
		{Level: LevelWarn, Message: "req", Pairs: []Pair{
			{"method", "GET"}, {"path", "/x"}, {"status", 404}, {"duration_ms", 3}, {"ok", false},
		}},
		{Level: LevelError, Message: "boom", Ctx: Context{
			RequestID: "r", Module: "core", Fields: map[string]string{"a": "1"},
		}},
	}
	for _, rec := range recs {
		plain := prettyEncoder{}.Encode(rec)
		colored := prettyEncoder{color: true}.Encode(rec)
		if stripANSI(colored) != plain {
			t.Errorf("stripped colored output differs:\n%q\n%q", stripANSI(colored), plain)
		}
	}
}

func TestPrettyColorHeuristics(t *testing.T) {
	rec := Record{Level: LevelInfo, Message: "req", Pairs: []Pair{
		{"status", 200}, {"latency_ms", 5}, {"method", "GET"},
	}}
	got := prettyEncoder{color: true}.Encode(rec)

	for _, frag := range []string{
		ansiStatus2 + "200" + ansiReset,
		ansiDimMS + "5" + ansiReset,
		ansiAccent + `"GET"` + ansiReset,
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("colored output missing %q:\n%q", frag, got)
		}
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Errorf("colored output must end with a reset: %q", got)
	}
}

func TestPrettyStatusBands(t *testing.T) {
	tests := []struct {
		status int
		style  string
	}{
		{204, ansiStatus2},
		{301, ansiStatus3},
		{404, ansiStatus4},
		{503, ansiStatus5},
	}
	for _, tt := range tests {
		rec := Record{Level: LevelInfo, Message: "m", Pairs: []Pair{{"status", tt.status}}}
		got := prettyEncoder{color: true}.Encode(rec)
		if !strings.Contains(got, tt.style) {
			t.Errorf("status %d: missing style %q in %q", tt.status, tt.style, got)
		}
	}
}

func TestPrettyNonNumericStatusFallsBack(t *testing.T) {
	rec := Record{Level: LevelInfo, Message: "m", Pairs: []Pair{{"status", "pending"}}}
	got := prettyEncoder{color: true}.Encode(rec)
	if !strings.Contains(got, ansiString+`"pending"`+ansiReset) {
		t.Errorf("non-numeric status should use string coloring: %q", got)
	}
}
