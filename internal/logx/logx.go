package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config selects log level and output format.
type Config struct {
	Debug  bool
	Pretty bool
}

// New builds a zerolog.Logger writing to stdout.
func New(service string, conf Config) zerolog.Logger {
	return NewWithWriter(os.Stdout, service, conf)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, service string, conf Config) zerolog.Logger {
	if conf.Pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
