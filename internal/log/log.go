// Package log provides structured, colored logging for seedtool.
//
// Output goes to stderr so stdout carries only command results. Callers
// must never log mnemonic words, index hex or entropy.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers.
var (
	Wordlist zerolog.Logger
	Shell    zerolog.Logger
	Backup   zerolog.Logger
)

var levels = map[string]zerolog.Level{
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"off":      zerolog.Disabled,
	"disabled": zerolog.Disabled,
}

// sink is the log file opened by the last Init, if any.
var sink *os.File

func init() {
	setLogger(New(os.Stderr, "warn", false))
}

// Init configures the global logger from the log.* config keys. A non-empty
// file receives a JSON copy of every line.
func Init(level string, jsonOutput bool, file string) error {
	var w io.Writer = os.Stderr
	if !jsonOutput {
		w = consoleWriter(os.Stderr)
	}

	var f *os.File
	if file != "" {
		var err error
		f, err = os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		w = zerolog.MultiLevelWriter(w, f)
	}
	if sink != nil {
		_ = sink.Close()
	}
	sink = f

	setLogger(newLogger(w, level))
	return nil
}

// New returns a logger writing to w, colored unless jsonOutput is set.
func New(w io.Writer, level string, jsonOutput bool) zerolog.Logger {
	if !jsonOutput {
		w = consoleWriter(w)
	}
	return newLogger(w, level)
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func setLogger(l zerolog.Logger) {
	Logger = l
	Wordlist = l.With().Str("component", "wordlist").Logger()
	Shell = l.With().Str("component", "shell").Logger()
	Backup = l.With().Str("component", "backup").Logger()
}

// parseLevel maps a level name to zerolog; unknown names fall back to info.
func parseLevel(level string) zerolog.Level {
	if lvl, ok := levels[level]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether level is a recognized level name.
func ValidLevel(level string) bool {
	_, ok := levels[level]
	return ok
}

// Benchmark returns a func that logs the time elapsed since the call at
// debug level. Use as defer log.Benchmark("name")().
func Benchmark(name string) func() {
	start := time.Now()
	return func() {
		Logger.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("benchmark")
	}
}
