// Package logger provides leveled, category-tagged logging with colored
// terminal output and an optional JSON file mirror.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
}

type Logger struct {
	minLevel Level
	file     *os.File
}

// New returns a logger writing colored lines to stdout. When path is
// non-empty, entries are mirrored to the file as JSON.
func New(minLevel Level, path string) (*Logger, error) {
	l := &Logger{minLevel: minLevel}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
	}
	return l, nil
}

func (l *Logger) Debug(category, msg string) { l.log(DEBUG, category, msg) }
func (l *Logger) Info(category, msg string)  { l.log(INFO, category, msg) }
func (l *Logger) Warn(category, msg string)  { l.log(WARN, category, msg) }
func (l *Logger) Error(category, msg string) { l.log(ERROR, category, msg) }

func (l *Logger) Infof(category, format string, args ...interface{}) {
	l.log(INFO, category, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(category, format string, args ...interface{}) {
	l.log(WARN, category, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(category, format string, args ...interface{}) {
	l.log(ERROR, category, fmt.Sprintf(format, args...))
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) log(level Level, category, msg string) {
	if level < l.minLevel {
		return
	}
	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     levelString(level),
		Category:  category,
		Message:   msg,
	}

	c := levelColor(level)
	fmt.Printf("%s %s %s %s\n", e.Timestamp, c.Sprintf("%-5s", e.Level), c.Sprint("["+e.Category+"]"), e.Message)

	if l.file != nil {
		if data, err := json.Marshal(e); err == nil {
			l.file.Write(append(data, '\n'))
		}
	}
}

func levelString(level Level) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	default:
		return "ERROR"
	}
}

func levelColor(level Level) *color.Color {
	switch level {
	case DEBUG:
		return color.New(color.FgCyan)
	case INFO:
		return color.New(color.FgGreen)
	case WARN:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
