package log

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

func init() {
	// User facing output goes to stdout, diagnostics to stderr.
	logrus.SetOutput(os.Stderr)
}

// SetDebug raises the level of the standard logger to debug.
func SetDebug(debug bool) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// Phase returns the logger for one phase of the pipeline.
func Phase(phase string) *logrus.Entry {
	return logrus.WithField("phase", phase)
}

// Raw returns the standard logger itself.
func Raw() *logrus.Logger {
	return logrus.StandardLogger()
}

// WithInterface attaches value to entry as a JSON encoded field.
func WithInterface(entry *logrus.Entry, key string, value interface{}) *logrus.Entry {
	valueJSON, _ := json.Marshal(value)
	return entry.WithField(key, string(valueJSON))
}
