// SPDX-License-Identifier: Unlicense OR MIT

// Package log constructs the loggers of the example hosts.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a logger and the file it writes to, if any.
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New returns a logger at the named logrus level. If path is set the
// log is appended to that file, otherwise it is written to w.
func New(level, path string, w io.Writer) (*Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	l := &Logger{Logger: logrus.New()}
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   path != "",
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		l.file = f
		w = f
	}
	l.SetOutput(w)
	return l, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.SetOutput(io.Discard)
	return err
}

// ValueChanged logs a change of the selected value at debug level.
func (l *Logger) ValueChanged(value float32, state fmt.Stringer) {
	l.WithFields(logrus.Fields{
		"value": value,
		"state": state.String(),
	}).Debug("value changed")
}
