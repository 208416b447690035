package xenon

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "xenon",
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// SetLogger replaces the game logger. Passing nil restores the default stderr
// logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "xenon", ReportTimestamp: true})
	}
	logger = l
}
