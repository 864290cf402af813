// Package jsonlog is the structured logger used across the service. It keeps
// a map-of-fields call style on top of charmbracelet/log.
package jsonlog

import (
	"fmt"
	"io"
	stdlog "log"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
	FormatText   = "text"
)

type Options struct {
	Level  string
	Format string
}

type Logger struct {
	base *log.Logger
}

// New returns an info-level JSON logger writing to w.
func New(w io.Writer) *Logger {
	l, _ := NewWithOptions(w, Options{})
	return l
}

func NewWithOptions(w io.Writer, opts Options) (*Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	formatter, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	base := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
	})
	return &Logger{base: base}, nil
}

// ParseFormat maps a configured format name to a formatter. Empty means JSON.
func ParseFormat(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	case FormatText:
		return log.TextFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", name)
	}
}

func (l *Logger) Debug(msg string, fields map[string]any) {
	l.base.Debug(msg, keyvals(fields)...)
}

func (l *Logger) Info(msg string, fields map[string]any) {
	l.base.Info(msg, keyvals(fields)...)
}

func (l *Logger) Warn(msg string, fields map[string]any) {
	l.base.Warn(msg, keyvals(fields)...)
}

func (l *Logger) Error(msg string, fields map[string]any) {
	l.base.Error(msg, keyvals(fields)...)
}

// With returns a logger that adds fields to every entry.
func (l *Logger) With(fields map[string]any) *Logger {
	return &Logger{base: l.base.With(keyvals(fields)...)}
}

// StdLogger adapts the logger for APIs that want a *log.Logger, such as
// http.Server.ErrorLog. Every line is logged at error level.
func (l *Logger) StdLogger() *stdlog.Logger {
	return l.base.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
}

// keyvals flattens fields in key order so output is stable.
func keyvals(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}
