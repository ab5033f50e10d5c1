// Package logger builds the logrus logger shared by the HTTP layer, the jobs and the
// command line tools.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing to out (stdout when nil). An unknown level falls
// back to info.
func New(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

// LogError writes one structured error entry.
//
// Example:
//
//	logger.LogError(log, "http", "CreatePurchaseOrder", "persist order", req, err)
func LogError(log logrus.FieldLogger, moduleName, funcName, context string, data any, err error) {
	log.WithFields(logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
		"data":     data,
	}).WithError(err).Error(context)
}

// Component returns an entry tagged with the name of a background component.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("component", name)
}
