package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to path. The terminal belongs to the UI, so
// logs never go to stdout; "-" or an empty path discards them. The returned
// closer releases the log file.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	if path == "" || path == "-" {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
