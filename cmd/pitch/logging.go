package main

import (
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger configures console logging for a command.
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
