package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging: colored console output plus an optional
// plain-text log file. Debug lines go to the file only when one is
// configured, mirroring a quieter console during long crawls.
type Logger struct {
	out  *log.Logger
	err  *log.Logger
	file *log.Logger
}

// NewLogger creates a Logger writing to stdout/stderr. If logPath is
// non-empty the file is opened in append mode and receives every level;
// a file that cannot be opened is reported and skipped.
func NewLogger(logPath string) *Logger {
	l := &Logger{
		out: log.New(os.Stdout, "", 0),
		err: log.New(os.Stderr, "", 0),
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			l.err.Printf("[%s] WARN  could not open log file %s: %v", timestamp(), logPath, err)
		} else {
			l.file = log.New(f, "", 0)
		}
	}

	return l
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) emit(console *log.Logger, tag, color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if console != nil {
		console.Printf("[%s] %s%s\033[0m %s", timestamp(), color, tag, msg)
	}
	if l.file != nil {
		l.file.Printf("[%s] %s %s", timestamp(), tag, msg)
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.emit(l.out, "INFO ", "\033[32m", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.emit(l.out, "WARN ", "\033[33m", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.emit(l.err, "ERROR", "\033[31m", format, args...)
}

// Debug is file-only when a log file is configured.
func (l *Logger) Debug(format string, args ...any) {
	if l.file != nil {
		l.emit(nil, "DEBUG", "\033[36m", format, args...)
		return
	}
	l.emit(l.out, "DEBUG", "\033[36m", format, args...)
}
