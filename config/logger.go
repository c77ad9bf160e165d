package config

import (
	"github.com/vixlabs/vixutil/logger"
)

// LoggerOptions converts the validated configuration into logger.Options.
// Sink wiring stays with NewLogger so the options remain inspectable in
// tests without opening files.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.Options{
		Level:       logger.ParseLevel(c.Log.Level),
		Format:      logger.ParseFormat(c.Log.Format),
		Async:       c.Log.Async,
		QueueSize:   c.Log.QueueSize,
		Overflow:    logger.ParseOverflow(c.Log.Overflow),
		ConsoleSync: c.Log.ConsoleSync,
	}
	switch c.Log.Color {
	case "always":
		opts.Color = logger.ColorAlways
	case "never":
		opts.Color = logger.ColorNever
	default:
		opts.Color = logger.ColorAuto
	}
	return opts
}

// NewLogger builds a Logger from the configuration: the default console sink
// plus, when log.file.path is set, a rotating file sink. A file sink that
// cannot be opened is reported on the logger's fallback stream and skipped.
func (c *Config) NewLogger() *logger.Logger {
	l := logger.New(c.LoggerOptions())
	if c.Log.File.Path != "" {
		fs, err := logger.NewFileSink(logger.FileSinkConfig{
			Path:       c.Log.File.Path,
			MaxSizeMB:  c.Log.File.MaxSizeMB,
			MaxBackups: c.Log.File.MaxBackups,
			MaxAgeDays: c.Log.File.MaxAgeDays,
			Compress:   c.Log.File.Compress,
		})
		if err != nil {
			l.Errorf("log file disabled: %v", err)
		} else {
			l.AddSink(fs)
		}
	}
	return l
}
