package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level is a logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a case-insensitive level name. Unknown names map to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled, prefixed lines through a standard log.Logger.
type Logger struct {
	level Level
	out   *log.Logger
}

func New(w io.Writer, level string) *Logger {
	return &Logger{
		level: ParseLevel(level),
		out:   log.New(w, "", log.LstdFlags),
	}
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) logf(level Level, tag, format string, v ...any) {
	if l.enabled(level) {
		l.out.Output(3, "["+tag+"] "+fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, "DEBUG", format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, "INFO", format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, "WARN", format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, "ERROR", format, v...) }
