// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter sends error-and-above events to ErrorWriter and everything
// else to InfoWriter.
type LevelWriter struct {
	ErrorWriter io.Writer
	InfoWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	w := lw.InfoWriter
	if l >= zerolog.ErrorLevel && l != zerolog.NoLevel {
		w = lw.ErrorWriter
	}

	return w.Write(p) //nolint:wrapcheck
}

// Write implements io.Writer for events without a level.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.InfoWriter.Write(p) //nolint:wrapcheck
}

// Init configures the global logger. Metrics for log statements are
// registered on reg; pass prometheus.DefaultRegisterer outside tests.
func Init(cfg Log, reg prometheus.Registerer) error {
	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "loglevel %s is not supported", cfg.LogLevel)
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	stack := false
	if logLevel == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		stack = true
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.ErrorHandler = ErrorHandler

	ph := NewPrometheusHook(cfg.AppName, reg)

	var writers []io.Writer
	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}
	if cfg.File.Enabled {
		fw, err := newRollingFile(cfg)
		if err != nil {
			return err
		}
		writers = append(writers, fw)
	}

	mw := zerolog.MultiLevelWriter(writers...)
	ctx := zerolog.New(mw).Hook(ph).With().Timestamp().Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		log.Logger = ctx.Stack().Caller().Logger()
	case cfg.ReportCaller:
		log.Logger = ctx.Caller().Logger()
	case stack:
		log.Logger = ctx.Stack().Logger()
	default:
		log.Logger = ctx.Logger()
	}

	return nil
}

func newRollingFile(cfg Log) (io.Writer, error) {
	if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil { //nolint:mnd
		return nil, errors.Wrapf(err, "creating log directory %s", cfg.File.Path)
	}

	infoLog := cfg.File.InfoLog
	if infoLog == "" {
		infoLog = "folio.log"
	}
	errorLog := cfg.File.ErrorLog
	if errorLog == "" {
		errorLog = "folio-error.log"
	}

	return &LevelWriter{
		InfoWriter: &lumberjack.Logger{
			Filename:   filepath.Join(cfg.File.Path, infoLog),
			MaxSize:    cfg.File.InfoMaxSize,
			MaxAge:     cfg.File.InfoMaxAge,
			MaxBackups: cfg.File.InfoMaxBackups,
		},
		ErrorWriter: &lumberjack.Logger{
			Filename:   filepath.Join(cfg.File.Path, errorLog),
			MaxSize:    cfg.File.ErrorMaxSize,
			MaxAge:     cfg.File.ErrorMaxAge,
			MaxBackups: cfg.File.ErrorMaxBackups,
		},
	}, nil
}

// NewConsoleWriter writes info to stdout and errors to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	lw := &LevelWriter{
		ErrorWriter: os.Stderr,
		InfoWriter:  os.Stdout,
	}

	if cfg.Console.Pretty {
		lw.ErrorWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		lw.InfoWriter = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	return lw
}
