// Package logging provides the process-wide structured logger.
package logging

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger zerolog.Logger
	once   sync.Once
)

// Get returns the shared logger. The first call initializes it; set the
// RODCUT_DEBUG environment variable to enable debug-level output.
func Get() zerolog.Logger {
	once.Do(func() {
		logLevel := zerolog.InfoLevel
		if os.Getenv("RODCUT_DEBUG") != "" {
			logLevel = zerolog.DebugLevel
		}

		console := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}

		logger = zerolog.New(console).Level(logLevel).With().Timestamp().Logger()
	})

	return logger
}
