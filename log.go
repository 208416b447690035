package engine2000

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide structured logger. Misuse guards (duplicate
// components, unknown physics layers, duplicate shapes) report here and
// continue.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "engine2000",
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// Logger returns the logger used by the engine.
func Logger() *log.Logger {
	return logger
}

// SetLogger replaces the engine logger. Passing nil restores the default
// stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "engine2000", ReportTimestamp: true})
	}
	logger = l
}

// SetDebugMode toggles debug-level logging for the engine logger.
func SetDebugMode(enabled bool) {
	if enabled {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}
