package pkg

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelErrOnly
	LogLevelDebug
)

type LogOptions struct {
	Should_log      bool
	Show_debug_logs bool
}

var (
	log_level            = LogLevelErrOnly
	log_output io.Writer = os.Stderr
	logger               = newLogger(log_output, log_level)
)

func newLogger(w io.Writer, level LogLevel) zerolog.Logger {
	l := zerolog.New(w).With().Timestamp().Logger()
	switch level {
	case LogLevelNone:
		return l.Level(zerolog.Disabled)
	case LogLevelDebug:
		return l.Level(zerolog.DebugLevel)
	default:
		// warnings report data loss (e.g. an overwritten index entry)
		// so they stay visible next to errors
		return l.Level(zerolog.WarnLevel)
	}
}

func SetLogLevel(level LogLevel) {
	log_level = level
	logger = newLogger(log_output, level)
	logger.Debug().Msgf("log level set to %d", level)
}

// SetLogOutput redirects every log line to w. The current level is kept.
func SetLogOutput(w io.Writer) {
	log_output = w
	logger = newLogger(w, log_level)
}

func ConfigureLogging(opts LogOptions) {
	if !opts.Should_log {
		SetLogLevel(LogLevelNone)
	} else if opts.Show_debug_logs {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelErrOnly)
	}
}

func GetLogLevel() LogLevel { return log_level }

func line(v []any) string { return strings.TrimSuffix(fmt.Sprintln(v...), "\n") }

func InfoLog(v ...any)  { logger.Info().Msg(line(v)) }
func ErrorLog(v ...any) { logger.Error().Msg(line(v)) }
func DebugLog(v ...any) { logger.Debug().Msg(line(v)) }

// DebugEnabled reports whether DebugLog writes anything, for callers that
// build expensive log lines.
func DebugEnabled() bool { return logger.Debug().Enabled() }
func WarnLog(v ...any)   { logger.Warn().Msg(line(v)) }
