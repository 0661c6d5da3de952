// Package logging configures the shared logrus.Logger used by
// crossgen's CLI and serve command. pkg/retryctl and the HTTP handlers
// take a *logrus.Logger directly, so this package only standardizes
// construction rather than wrapping the type.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus.Logger writing to stderr. jsonFormat selects the
// JSON formatter (for crossgen serve, where logs are typically
// aggregated) over the default text formatter (for interactive CLI
// use).
func New(level string, jsonFormat bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
