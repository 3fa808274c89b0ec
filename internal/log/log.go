// Package log provides structured logging for sdktable.
// Lines carry a timestamp, level, category and key=value fields. Logging is
// a no-op until one of the Init functions installs a logger.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/sdktable/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a config string to a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category groups related log messages.
type Category string

const (
	CatTable   Category = "table"   // Registry mutations and listener dispatch
	CatResolve Category = "resolve" // Derived-entry resolution and home validation
	CatStore   Category = "store"   // Persistence backends
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
	CatCache   Category = "cache"
	CatCLI     Category = "cli"
)

type logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	minLevel Level
	entries  *pubsub.Broker[string]
}

var (
	current   *logger
	currentMu sync.RWMutex
)

func install(out io.Writer, closer io.Closer, minLevel Level) {
	currentMu.Lock()
	defer currentMu.Unlock()
	if current != nil {
		current.entries.Close()
	}
	current = &logger{
		out:      out,
		closer:   closer,
		minLevel: minLevel,
		entries:  pubsub.NewBroker[string](),
	}
}

func active() *logger {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// InitWithTeaLog logs to path through tea.LogToFile, which appends to the
// file and tags each line with prefix. The returned func closes the file
// and turns logging off.
func InitWithTeaLog(path, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	install(f, f, LevelDebug)
	return Reset, nil
}

// InitWriter logs to w. Nothing below minLevel is written.
func InitWriter(w io.Writer, minLevel Level) {
	install(w, nil, minLevel)
}

// Enabled reports whether a logger is installed.
func Enabled() bool {
	return active() != nil
}

// Reset closes the installed logger, if any, so logging becomes a no-op.
func Reset() {
	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		return
	}
	current.entries.Close()
	if current.closer != nil {
		_ = current.closer.Close()
	}
	current = nil
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := active(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any)  { write(LevelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any)  { write(LevelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", errText))
}

// format renders one line:
// 2025-12-06T10:45:00 [ERROR] [table] message key=value key2=value2
func format(now time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(now.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	b.WriteByte('\n')
	return b.String()
}

func write(level Level, cat Category, msg string, fields []any) {
	l := active()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	entry := format(time.Now(), level, cat, msg, fields)
	if l.out != nil {
		_, _ = io.WriteString(l.out, entry)
	}
	l.entries.Publish(pubsub.CreatedEvent, entry)
}

// LogListener pulls formatted log lines one at a time.
type LogListener = pubsub.Listener[string]

// NewListener follows log lines written after the call until ctx is done.
// It returns nil when no logger is installed.
func NewListener(ctx context.Context) *LogListener {
	l := active()
	if l == nil {
		return nil
	}
	return pubsub.NewListener(ctx, l.entries)
}
