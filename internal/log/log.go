// Package log configures the module's structured logger: a thin,
// env-var-driven wrapper around zerolog's global logger, in the shape
// of a small Configure-once call rather than a package of loggers
// threaded through every call site.
package log

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	EnvLevel     = "UNIPROTSTREAM_LOG_LEVEL"
	EnvTimestamp = "UNIPROTSTREAM_LOG_TIMESTAMP"
	EnvNoColor   = "UNIPROTSTREAM_LOG_NOCOLOR"
)

// Profile selects a baseline configuration before environment overrides
// are applied.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once

// ConfigureRuntime sets up the global logger for normal library use:
// info level, timestamps on, colour on (no terminal detection is done).
func ConfigureRuntime() { Configure(ProfileRuntime) }

// ConfigureTests sets up the global logger for test runs: debug level,
// no timestamps (keeps golden-file-adjacent test output diffable).
func ConfigureTests() { Configure(ProfileTest) }

// Configure applies profile once per process; subsequent calls (from
// any profile) are no-ops, matching zerolog's own global-logger model.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		level, timestamp, noColor := defaults(profile)
		applyEnvOverrides(&level, &timestamp, &noColor)

		zerolog.SetGlobalLevel(level)
		writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}
		if !timestamp {
			writer.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		Logger = zerolog.New(writer).With().Timestamp().Logger()
	})
}

// Logger is the module's configured logger. Configure must run first;
// callers that never call Configure get zerolog's disabled-by-default
// logger, which is silent but never panics.
var Logger zerolog.Logger = zerolog.Nop()

func defaults(profile Profile) (level zerolog.Level, timestamp, noColor bool) {
	switch profile {
	case ProfileTest:
		return zerolog.DebugLevel, false, true
	default:
		return zerolog.InfoLevel, true, false
	}
}

func applyEnvOverrides(level *zerolog.Level, timestamp, noColor *bool) {
	if lvl, ok := parseLevel(os.Getenv(EnvLevel)); ok {
		*level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvTimestamp)); ok {
		*timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvNoColor)); ok {
		*noColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
