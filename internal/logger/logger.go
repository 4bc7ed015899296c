package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info    *log.Logger
	Warn    *log.Logger
	Debug   *log.Logger
	Verbose *log.Logger
	Error   *log.Logger
	Always  *log.Logger // Always logs regardless of log level

	// Current log level for filtering
	currentLogLevel string
)

// Until Init is called every logger discards, so packages and tests can log freely.
func init() {
	configure("info", io.Discard, io.Discard)
}

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "optionpricer.log")
}

// InitWithConfig logs to an append-mode file; errors are mirrored to stderr.
func InitWithConfig(logLevel, logFilePath string) error {
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	configure(logLevel, logFile, io.MultiWriter(os.Stderr, logFile))
	return nil
}

// InitWithWriter sends every enabled level, errors included, to w.
func InitWithWriter(logLevel string, w io.Writer) {
	configure(logLevel, w, w)
}

func configure(logLevel string, out, errOut io.Writer) {
	currentLogLevel = logLevel
	nullWriter := io.Discard

	Info = log.New(getWriter("info", out, nullWriter), "ℹ️  INFO: ", log.Ldate|log.Ltime)
	Warn = log.New(getWriter("warn", out, nullWriter), "⚠️  WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(getWriter("debug", out, nullWriter), "🐛 DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Verbose = log.New(getWriter("verbose", out, nullWriter), "🔍 VERBOSE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(errOut, "❌ ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Always = log.New(out, "📝 ALWAYS: ", log.Ldate|log.Ltime)
}

// Level returns the active log level
func Level() string {
	return currentLogLevel
}

// getWriter returns the appropriate writer based on log level
func getWriter(level string, activeWriter, disabledWriter io.Writer) io.Writer {
	if shouldLog(level) {
		return activeWriter
	}
	return disabledWriter
}

// shouldLog determines if a log level should be active
func shouldLog(level string) bool {
	levels := map[string]int{
		"error":   0,
		"warn":    1,
		"info":    2,
		"debug":   3,
		"verbose": 4,
	}

	currentLevel, exists := levels[currentLogLevel]
	if !exists {
		currentLevel = 2 // default to info
	}

	requiredLevel, exists := levels[level]
	if !exists {
		return false
	}

	return currentLevel >= requiredLevel
}
