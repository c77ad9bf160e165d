package logger

import (
	"io"
	"testing"
)

func benchLogger(opts Options) *Logger {
	opts.Sinks = []Sink{NewWriterSink(io.Discard)}
	opts.Fallback = io.Discard
	return New(opts)
}

func BenchmarkLogfFiltered(b *testing.B) {
	l := benchLogger(Options{Level: LevelError})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Debugf("dropped %d", i)
	}
}

func BenchmarkLogfKV(b *testing.B) {
	l := benchLogger(Options{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Infof("request handled")
	}
}

func BenchmarkLogKVJSON(b *testing.B) {
	l := benchLogger(Options{Format: FormatJSON})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.InfoKV("request handled", "status", 200, "latency_ms", 12)
	}
}

func BenchmarkLogfAsync(b *testing.B) {
	l := benchLogger(Options{Async: true, QueueSize: 8192})
	defer l.Close()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Infof("queued")
	}
	l.Flush()
}

func BenchmarkJSONEncode(b *testing.B) {
	rec := Record{
		Level:   LevelInfo,
		Message: "request handled",
		Pairs:   []Pair{{"status", 200}, {"latency_ms", 12}},
		Ctx:     Context{RequestID: "req-1", Module: "http"},
	}
	enc := jsonEncoder{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = enc.Encode(rec)
	}
}
