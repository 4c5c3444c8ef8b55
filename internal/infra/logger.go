package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures the global zerolog logger.
type LogOptions struct {
	Level      string
	File       string // empty = stderr only
	Production bool
}

// SetupLogger replaces log.Logger. Development gets a console writer, production
// plain JSON. When File is set, JSON lines are also written to a rotated file.
func SetupLogger(opts LogOptions) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if !opts.Production {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	if opts.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
