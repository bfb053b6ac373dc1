// Package cli provides the command-line interface for syncstatus.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/syncstatus/internal/config"
	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/logging"
)

//nolint:gochecknoglobals // Needed for cleanup and TUI muting
var (
	// logFileWriter holds the log file writer for cleanup purposes.
	logFileWriter   io.WriteCloser
	logFileWriterMu sync.Mutex

	// consoleMuted silences console log output while a TUI owns the terminal.
	consoleMuted atomic.Bool

	// zerologGlobalMu protects concurrent writes to the zerolog global logger.
	zerologGlobalMu sync.Mutex
)

// gatedWriter drops writes while the console is muted.
type gatedWriter struct {
	w io.Writer
}

// Write implements io.Writer.
func (g gatedWriter) Write(p []byte) (int, error) {
	if consoleMuted.Load() {
		return len(p), nil
	}
	return g.w.Write(p)
}

// muteConsole stops console logging until the returned func is called.
// The log file keeps receiving entries.
func muteConsole() (restore func()) {
	prev := consoleMuted.Swap(true)
	return func() { consoleMuted.Store(prev) }
}

// InitLogger creates and configures a zerolog.Logger based on verbosity flags.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// Output format is determined by the terminal:
//   - TTY with colors enabled: Console writer with timestamps
//   - Non-TTY or NO_COLOR set: JSON output to stderr
//
// The logger also writes to ~/.syncstatus/logs/syncstatus.log, rotated per
// lc. If the log file cannot be created, logging continues on the console.
func InitLogger(verbose, quiet bool, lc config.LoggingConfig) zerolog.Logger {
	console := gatedWriter{w: selectOutput()}

	var writer io.Writer = console
	if fileWriter, err := createLogFileWriter(lc); err == nil {
		setLogFileWriter(fileWriter)
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	logger := buildLogger(writer, verbose, quiet)
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates and configures a zerolog.Logger with a custom writer.
// This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := buildLogger(w, verbose, quiet)
	setGlobalLogger(logger)
	return logger
}

func buildLogger(w io.Writer, verbose, quiet bool) zerolog.Logger {
	return zerolog.New(w).
		Level(selectLevel(verbose, quiet)).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
}

// setGlobalLogger points the zerolog/log package at the CLI logger so
// log.Debug() and friends share its configuration.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

func setLogFileWriter(w io.WriteCloser) {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
	}
	logFileWriter = w
}

// CloseLogFile closes the global log file writer if it was opened.
// This should be called during application shutdown.
func CloseLogFile() {
	setLogFileWriter(nil)
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput determines the appropriate output writer based on
// terminal capabilities and environment settings.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates the rotating log file writer, wrapped so
// tokens and e-mail addresses never reach disk.
func createLogFileWriter(lc config.LoggingConfig) (io.WriteCloser, error) {
	logPath, err := LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    orDefault(lc.MaxSizeMB, constants.LogMaxSizeMB),
		MaxBackups: orDefault(lc.MaxBackups, constants.LogMaxBackups),
		MaxAge:     orDefault(lc.MaxAgeDays, constants.LogMaxAgeDays),
		Compress:   constants.LogCompress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// LogFilePath returns the path to the global CLI log file.
func LogFilePath() (string, error) {
	home, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir, constants.CLILogFileName), nil
}
