package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// FormatPretty is an alias for the console format.
const FormatPretty = "pretty"

// Logger is a zerolog logger with map-based field helpers.
type Logger struct {
	zl zerolog.Logger
}

// Init builds the global logger from cfg and points zerolog's package
// logger at it.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	name := cfg.ServiceName
	if name == "" {
		name = "default"
	}
	l := New(cfg, name)
	SetGlobalLogger(l)
	log.Logger = l.zl
}

// New creates a logger. An unknown level falls back to info.
func New(cfg *Config, serviceName string) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = outputWriter(cfg.Output)
	console := isConsole(cfg.Format)
	if console {
		w = consoleWriter(w, cfg.NoColor, serviceName)
	}

	zc := zerolog.New(w).With()
	if cfg.Timestamp || console {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger()}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

type contextKey struct{}

// ContextWithRequestID stores a request ID so WithContext can attach it.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// RequestIDFromContext returns the request ID stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// WithContext tags the logger with the request ID and the active span's
// trace and span IDs, when present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.zl.With()
	if id := RequestIDFromContext(ctx); id != "" {
		zc = zc.Str(FieldRequestID, id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		zc = zc.Str(FieldTraceID, sc.TraceID().String()).Str(FieldSpanID, sc.SpanID().String())
	}
	return &Logger{zl: zc.Logger()}
}

// WithComponent tags the logger with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{zl: l.zl.With().Str(FieldComponent, name).Logger()}
}

// WithFields attaches fields to every subsequent entry.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

// WithError attaches err under the "error" key.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().Err(err).Logger()}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Error(), msg, fields)
}

// Fatal logs and exits the process.
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Fatal(), msg, fields)
}

func emit(e *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, f := range fields {
		e.Fields(f)
	}
	e.Msg(msg)
}

var globalLogger *Logger

// SetGlobalLogger replaces the logger behind the package-level functions.
func SetGlobalLogger(l *Logger) { globalLogger = l }

// GetGlobalLogger returns the global logger, creating a console logger on
// first use if Init was never called.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = New(&Config{Level: "info", Format: "console", Output: "stdout", Timestamp: true}, "default")
	}
	return globalLogger
}

func Debug(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Debug(msg, fields...) }

func Info(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Info(msg, fields...) }

// WithComponent returns a component logger derived from the global one.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

func isConsole(format string) bool {
	switch strings.ToLower(format) {
	case "console", FormatPretty:
		return true
	}
	return false
}

var levelTags = map[string]struct{ tag, color string }{
	"trace": {"TRC", "90"},
	"debug": {"DBG", "36"},
	"info":  {"INF", "32"},
	"warn":  {"WRN", "33"},
	"error": {"ERR", "31"},
	"fatal": {"FTL", "35"},
}

func paint(s, color string, noColor bool) string {
	if noColor || color == "" {
		return s
	}
	return "\x1b[" + color + "m" + s + "\x1b[0m"
}

// consoleWriter renders "[SVC][INF] message key:value" lines, where SVC is
// the first three letters of the service name.
func consoleWriter(out io.Writer, noColor bool, serviceName string) zerolog.ConsoleWriter {
	var prefix string
	if len(serviceName) >= 3 && serviceName != "default" {
		prefix = paint("["+strings.ToUpper(serviceName[:3])+"]", "34", noColor)
	}
	str := func(i interface{}) string {
		if i == nil {
			return ""
		}
		return fmt.Sprint(i)
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			name := strings.ToLower(str(i))
			if lt, ok := levelTags[name]; ok {
				return prefix + paint("["+lt.tag+"]", lt.color, noColor)
			}
			return prefix + "[" + strings.ToUpper(name) + "]"
		},
		FormatMessage:    str,
		FormatFieldName:  func(i interface{}) string { return str(i) + ":" },
		FormatFieldValue: str,
	}
}
