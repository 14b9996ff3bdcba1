package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer io.Writer
	debug  *bool // Pointer so --debug can switch it on after construction
	quiet  *bool // Pointer to quiet flag so it can be changed dynamically
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug messages only enabled in debug mode
	if level == slog.LevelDebug {
		return *h.debug
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// createLumberjackLogger creates a lumberjack logger with configuration from environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   false,
	}

	if maxSize, ok := envInt("CARVE_LOG_MAX_SIZE"); ok && maxSize > 0 {
		config.MaxSize = maxSize
	}
	if maxBackups, ok := envInt("CARVE_LOG_MAX_BACKUPS"); ok && maxBackups >= 0 {
		config.MaxBackups = maxBackups
	}
	if maxAge, ok := envInt("CARVE_LOG_MAX_AGE"); ok && maxAge > 0 {
		config.MaxAge = maxAge
	}

	return config
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog is the console and log-file logger every command writes through
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser // Lumberjack logger for file logging
	debug     bool
	quiet     bool
}

// NewSplog creates a new splog instance with console-only logging to stdout.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig(os.Stdout, "")
	return splog
}

// NewSplogWithConfig creates a splog writing to w and, when logFilePath is
// not empty, to a rotated log file that records every level with timestamps
func NewSplogWithConfig(w io.Writer, logFilePath string) (*Splog, error) {
	splog := &Splog{
		writer: w,
		debug:  os.Getenv("DEBUG") != "",
	}

	handlers := []slog.Handler{&simpleHandler{
		writer: w,
		debug:  &splog.debug,
		quiet:  &splog.quiet,
	}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return splog.withHandlers(handlers), fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(logFilePath)
		splog.logWriter = lumberjackLogger

		handlers = append(handlers, slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug, // Always log everything to file
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		}))
	}

	return splog.withHandlers(handlers), nil
}

func (s *Splog) withHandlers(handlers []slog.Handler) *Splog {
	s.logger = slog.New(&multiHandler{handlers: handlers})
	return s
}

// SetDebug switches console debug output on or off
func (s *Splog) SetDebug(debug bool) {
	s.debug = debug
}

// SetQuiet suppresses all console output while a full-screen prompt runs
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet returns whether the logger is in quiet mode.
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

func (s *Splog) log(level slog.Level, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, prefix+msg)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.log(slog.LevelInfo, "", format, args)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.log(slog.LevelWarn, "⚠️  ", format, args)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.log(slog.LevelError, "❌ ", format, args)
}

// Debug writes a debug message
func (s *Splog) Debug(format string, args ...interface{}) {
	s.log(slog.LevelDebug, "", format, args)
}

// Tip writes a tip message
func (s *Splog) Tip(format string, args ...interface{}) {
	s.log(slog.LevelInfo, "💡 ", format, args)
}

// Page writes a block of output, such as a rendered diff, without logging it to the file
func (s *Splog) Page(content string) {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprint(s.writer, content)
}

// Newline writes a newline
func (s *Splog) Newline() {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprintln(s.writer)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
