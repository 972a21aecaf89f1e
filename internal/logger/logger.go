package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Default level
	Logger.SetLevel(logrus.InfoLevel)

	// Override from env, e.g., LOG_LEVEL=debug
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsedLevel, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
			Logger.SetLevel(parsedLevel)
		}
	}
}

// WithComponent adds a component field to the logger
func WithComponent(component string) *logrus.Entry {
	return Logger.WithField("component", component)
}

// WithSnapshot tags an entry with the component and the snapshot it refers to.
func WithSnapshot(component, snapshotID string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"component": component,
		"snapshot":  snapshotID,
	})
}

// ConfigureLevel sets the level from its textual form. On a parse error the
// current level is kept and the error returned.
func ConfigureLevel(level string) (logrus.Level, error) {
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return Logger.GetLevel(), err
	}
	Logger.SetLevel(parsed)
	return parsed, nil
}
