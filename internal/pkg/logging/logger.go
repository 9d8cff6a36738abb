// Package logging provides the package-level logger every other package in
// this module calls into. It keeps the call shape the rest of the codebase
// expects (Debug/Info/Warn/Error taking a message and an optional field
// map) while delegating formatting, levels, and output to charmbracelet/log.
package logging

import (
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"payments-engine/internal/config"
)

// Level is the logging verbosity threshold.
type Level = log.Level

// Log levels, re-exported so callers never need to import charmbracelet/log
// directly.
const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
)

var defaultLogger = newLogger(InfoLevel, "text", os.Stderr)

// Init configures the package-level logger from cfg. All diagnostics go to
// stderr; stdout is reserved for the account snapshot.
func Init(cfg *config.Config) {
	defaultLogger = newLogger(parseLevel(cfg.Logging.Level), cfg.Logging.Format, os.Stderr)
}

func newLogger(level Level, format string, out *os.File) *log.Logger {
	formatter := log.TextFormatter
	if strings.EqualFold(format, "json") {
		formatter = log.JSONFormatter
	}

	l := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Formatter:       formatter,
	})
	l.SetLevel(level)
	return l
}

func parseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func keyvals(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}

func firstField(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	return fields[0]
}

func Debug(message string, fields ...map[string]interface{}) {
	defaultLogger.Debug(message, keyvals(firstField(fields))...)
}

func Info(message string, fields ...map[string]interface{}) {
	defaultLogger.Info(message, keyvals(firstField(fields))...)
}

func Warn(message string, fields ...map[string]interface{}) {
	defaultLogger.Warn(message, keyvals(firstField(fields))...)
}

func Error(message string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	defaultLogger.Error(message, keyvals(fields)...)
}
