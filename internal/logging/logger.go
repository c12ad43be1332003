// Package logging provides the leveled, optionally colored logger used by
// all commands, with an optional file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/neurobench/morphstats/internal/config"
	"github.com/neurobench/morphstats/internal/term"
)

// Level is the logger threshold. Messages below the configured minimum are
// dropped before formatting.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// levelFromVerbosity maps the -v count (0=warn, 1=info, 2+=debug) onto the
// minimum level the logger emits.
func levelFromVerbosity(v int) Level {
	switch {
	case v >= config.VerbosityDebug:
		return LevelDebug
	case v == config.VerbosityInfo:
		return LevelInfo
	default:
		return LevelWarn
	}
}

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu       sync.Mutex
	min      Level
	file     *os.File
	filePath string
}

// NewLogger configures terminal colors from cfg, resolves the verbosity
// threshold, and optionally opens cfg.LogFile. Call Close() when done if
// LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{min: levelFromVerbosity(cfg.Verbosity)}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = cfg.LogFile
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stderr
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	if l.min > LevelInfo {
		return
	}
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green). Gated with INFO.
func (l *Logger) Success(format string, args ...interface{}) {
	if l.min > LevelInfo {
		return
	}
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.min > LevelWarn {
		return
	}
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red). Never suppressed.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Outlier logs at OUTLIER level (orange). Gated with WARN.
func (l *Logger) Outlier(format string, args ...interface{}) {
	if l.min > LevelWarn {
		return
	}
	l.line("OUTLIER", term.Orange, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan); no-op unless verbosity is 2 or higher.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.min > LevelDebug {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}
