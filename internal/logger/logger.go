// Package logger provides leveled logging for tgcore.
// Warnings are always printed to stderr; debug and info messages appear
// when verbose mode is enabled via the --verbose flag or a lower level is
// configured.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	level   = zerolog.WarnLevel
	output  io.Writer = os.Stderr
	log     = build(output, level)
)

func build(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(console).Level(lvl)
}

// rebuild must be called with mu held.
func rebuild() {
	lvl := level
	if verbose {
		lvl = zerolog.DebugLevel
	}
	log = build(output, lvl)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the minimum level printed when verbose mode is off.
// Accepts zerolog level names such as "debug", "info" and "warn".
func SetLevel(name string) error {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	mu.Lock()
	defer mu.Unlock()
	level = lvl
	rebuild()
	return nil
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// Logger returns a copy of the current logger for structured fields.
func Logger() *zerolog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	return &l
}

// Debug prints a debug message.
func Debug(format string, args ...any) {
	Logger().Debug().Msgf(format, args...)
}

// Section prints a debug section header.
func Section(name string) {
	Logger().Debug().Msgf("=== %s ===", name)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	Logger().Info().Msgf(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	Logger().Warn().Msgf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	Logger().Error().Msgf(format, args...)
}
