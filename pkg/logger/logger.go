// Package logger writes structured JSON lines for GradeBook.
// Output goes to stderr by default so it never mixes with the menu on stdout.
// No external dependencies - uses only standard library.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEVELS
// ══════════════════════════════════════════════════════════════════════════════

// Level is the severity of a message. LevelOff silences a logger.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelOff
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
	LevelOff:   "OFF",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if l < LevelDebug || l > LevelOff {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel accepts level names in any case, plus WARNING and NONE as
// aliases. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "WARNING":
		return LevelWarn
	case "NONE":
		return LevelOff
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l)
		}
	}
	return LevelInfo
}

// ══════════════════════════════════════════════════════════════════════════════
// FIELDS
// ══════════════════════════════════════════════════════════════════════════════

// Field is one key of the "fields" object.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field          { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err stores the error text under "error"; a nil error is logged as null.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration stores d in its String form, e.g. "1.5ms".
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// Roster field helpers.
func StudentName(name string) Field { return String("student", name) }
func Grade(g int) Field             { return Int("grade", g) }
func Average(avg float64) Field     { return Float64("average", avg) }
func Component(name string) Field   { return String("component", name) }
func Operation(name string) Field   { return String("operation", name) }
func EventType(t string) Field      { return String("event_type", t) }

// ══════════════════════════════════════════════════════════════════════════════
// LOGGER
// ══════════════════════════════════════════════════════════════════════════════

type line struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Logger is safe for concurrent use. Children made with With share the
// parent's writer and lock.
type Logger struct {
	mu     *sync.Mutex
	out    io.Writer
	level  Level
	fields []Field
	now    func() time.Time
}

// Options configures New. A nil Output means stderr.
type Options struct {
	Output io.Writer
	Level  Level
}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		mu:    &sync.Mutex{},
		out:   out,
		level: opts.Level,
		now:   time.Now,
	}
}

// Nop returns a logger that writes nothing.
func Nop() *Logger {
	return New(Options{Output: io.Discard, Level: LevelOff})
}

// With returns a child logger that adds fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	child := *l
	child.fields = append(append(make([]Field, 0, len(l.fields)+len(fields)), l.fields...), fields...)
	return &child
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l.level != LevelOff && level >= l.level
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(LevelError, msg, fields) }

// Fatal logs and exits with status 1.
func (l *Logger) Fatal(msg string, fields ...Field) {
	l.write(LevelFatal, msg, fields)
	os.Exit(1)
}

func (l *Logger) write(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}

	ln := line{
		Timestamp: l.now().UTC().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
	}
	if len(l.fields)+len(fields) > 0 {
		ln.Fields = make(map[string]any, len(l.fields)+len(fields))
		for _, f := range l.fields {
			ln.Fields[f.Key] = f.Value
		}
		for _, f := range fields {
			ln.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(ln)
	if err != nil {
		data = []byte(fmt.Sprintf("%s [%s] %s", ln.Timestamp, ln.Level, msg))
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(data)
}

// ══════════════════════════════════════════════════════════════════════════════
// CONTEXT
// ══════════════════════════════════════════════════════════════════════════════

type ctxKey struct{}

// WithContext attaches l to ctx.
func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the attached logger, or Nop when there is none.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Nop()
}
