// Package logger provides the leveled console logger used by the girder CLI.
// Output is timestamped, filtered by level, and colorized when attached to a
// terminal. Loggers are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log levels, most verbose first.
const (
	levelTrace int = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger writes timestamped, level-filtered messages to a writer.
type ConsoleLogger struct {
	mu       sync.Mutex
	writer   io.Writer
	level    int
	colorize bool
}

// New creates a ConsoleLogger writing to w. A nil writer discards all
// output. level is one of trace, debug, info, warn, error
// (case-insensitive); anything else falls back to info. Color is enabled
// only when w is a terminal.
func New(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:   w,
		level:    parseLevel(level),
		colorize: isTerminal(w),
	}
}

// isTerminal reports whether the writer is a TTY that can render color.
// NO_COLOR is honored via fatih/color's global flag.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) && !color.NoColor
}

// parseLevel maps a level name to its numeric value, defaulting to info.
func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Tracef logs at trace level with Printf formatting.
func (cl *ConsoleLogger) Tracef(format string, args ...any) {
	cl.logf(levelTrace, "TRACE", format, args...)
}

// Debugf logs at debug level with Printf formatting.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs at info level with Printf formatting.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs at warn level with Printf formatting.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs at error level with Printf formatting.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logf(levelError, "ERROR", format, args...)
}

// logf formats and writes one line: "[HH:MM:SS] [LEVEL] message".
func (cl *ConsoleLogger) logf(level int, tag, format string, args ...any) {
	if cl.writer == nil || level < cl.level {
		return
	}

	if cl.colorize {
		tag = levelColor(tag).Sprint(tag)
	}
	line := fmt.Sprintf("[%s] [%s] %s\n",
		time.Now().Format("15:04:05"), tag, fmt.Sprintf(format, args...))

	cl.mu.Lock()
	defer cl.mu.Unlock()
	io.WriteString(cl.writer, line)
}

// levelColor chooses the color for a level tag.
func levelColor(tag string) *color.Color {
	switch tag {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}
