package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink is an opaque destination for fully rendered log lines. The severity
// travels alongside so a sink may route on it (stderr for errors, syslog
// priorities, ...); the line itself is final.
//
// Sinks own their durability policy. The pipeline never rotates, buffers or
// retries on a sink's behalf.
type Sink interface {
	Write(level Level, line string) error
	Close() error
}

// consoleSink writes to a console stream through the process-wide console
// gate. When console synchronization is enabled each write first waits out
// any in-flight banner print, then holds the console lock for the physical
// write.
type consoleSink struct {
	w           io.Writer
	gate        *consoleGate
	syncEnabled func() bool
}

// NewConsoleSink returns a sink writing to w (typically os.Stdout) under the
// shared console coordinator. syncEnabled is consulted on every write; nil
// means console synchronization is off.
func NewConsoleSink(w io.Writer, syncEnabled func() bool) Sink {
	if syncEnabled == nil {
		syncEnabled = func() bool { return false }
	}
	return &consoleSink{w: w, gate: sharedConsole, syncEnabled: syncEnabled}
}

func (s *consoleSink) Write(_ Level, line string) error {
	if s.syncEnabled() {
		s.gate.waitBanner()
	}
	s.gate.acquire()
	defer s.gate.release()
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

func (s *consoleSink) Close() error { return nil }

// fileSink appends lines to a size-rotated file. Rotation policy belongs to
// lumberjack; from the pipeline's point of view this is just a writer.
type fileSink struct {
	mu sync.Mutex
	lj *lumberjack.Logger
}

// FileSinkConfig mirrors the lumberjack knobs this package exposes.
type FileSinkConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewFileSink opens a rotating file sink. The parent directory is created if
// missing; an unwritable path surfaces as an error so the caller can fall
// back to the remaining sinks instead of crashing.
func NewFileSink(cfg FileSinkConfig) (Sink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file sink: empty path")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("file sink: create directory: %w", err)
		}
	}
	// Probe writability up front; lumberjack defers opening to first write,
	// which would push the failure into the hot path.
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("file sink: open %s: %w", cfg.Path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("file sink: close probe %s: %w", cfg.Path, err)
	}
	return &fileSink{lj: &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}}, nil
}

func (s *fileSink) Write(_ Level, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.lj.Write([]byte(line + "\n"))
	return err
}

func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lj.Close()
}

// writerSink writes to an arbitrary io.Writer without console coordination.
// It is the capture sink used throughout the tests.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w as a Sink. Writes are serialized; w itself need not
// be goroutine-safe.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) Write(_ Level, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

func (s *writerSink) Close() error { return nil }
