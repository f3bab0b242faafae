package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// New builds the application logger. level is a zerolog level name ("debug", "info", ...),
// format is "json" or "console"; unknown values fall back to info and console.
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if format == "json" {
		l = zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger().Level(lvl)
	}
	return l
}

// Init builds the logger on stdout and installs it as the global zerolog logger.
func Init(level, format string) zerolog.Logger {
	l := New(os.Stdout, level, format)
	zlog.Logger = l
	return l
}
