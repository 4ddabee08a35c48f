package logging

import (
	"fmt"
	"io"
	"os"

	"currencytracker/internal/config"

	"github.com/sirupsen/logrus"
)

// Open builds the application logger. Records go to stdout and are appended to
// cfg.File when set; the returned closer releases the file.
func Open(cfg config.Logging) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(parsedLvl)
	}

	if cfg.File == "" {
		logger.SetOutput(os.Stdout)
		return logger, noopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %q: %w", cfg.File, err)
	}
	if cfg.Quiet {
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.MultiWriter(os.Stdout, f))
	}
	return logger, f, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
