package logger

import "strings"

// Format selects the wire encoding for log records. It is a single
// process-wide value and may be changed at runtime; records already encoded
// or queued keep the encoding they were rendered with.
type Format uint8

const (
	// FormatKV renders "msg key=value ..." plain text.
	FormatKV Format = iota
	// FormatJSON renders a compact single-line JSON object.
	FormatJSON
	// FormatJSONPretty renders an indented JSON object, optionally colorized.
	FormatJSONPretty
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONPretty:
		return "json_pretty"
	default:
		return "kv"
	}
}

// ParseFormat maps a format string to a Format, case-insensitively.
// Anything unrecognized is KV, the safest encoding to stare at.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "json_pretty", "json-pretty", "pretty-json":
		return FormatJSONPretty
	default:
		return FormatKV
	}
}
