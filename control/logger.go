// control/logger.go
// Author: momentics <momentics@gmail.com>
//
// Structured logger construction for the gateway.

package control

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logger at cfg.LogLevel writing to out. An unknown level
// falls back to info.
func NewLogger(cfg Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false, FullTimestamp: true})
	SetLevel(log, cfg.LogLevel)
	return log
}

// SetLevel applies a level name to log.
func SetLevel(log *logrus.Logger, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}
