package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New builds the structured logger. file "-" writes to stderr; anything
// else is opened for append, since the terminal belongs to the UI.
// The returned closer releases the log file.
func New(level, file string) (*logrus.Entry, io.Closer, error) {
	log := logrus.New()

	// JSON format for structured logging
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	var closer io.Closer = nopCloser{}
	switch file {
	case "-":
		log.SetOutput(os.Stderr)
	case "":
		log.SetOutput(io.Discard)
	default:
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return nil, nil, errors.Wrap(err, "logger: create log dir")
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "logger: open %s", file)
		}
		log.SetOutput(f)
		closer = f
	}

	return log.WithField("app", "dues"), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
