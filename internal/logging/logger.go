// Package logging constructs the process-wide logrus logger from config.
// Packages receive a *logrus.Logger (or a derived *logrus.Entry with job
// fields) rather than importing this package.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/pressline/squeeze/internal/config"
	"github.com/pressline/squeeze/internal/term"
)

// New builds a logger from cfg. Color mode must already have been resolved
// via term.Configure. An unknown level name falls back to info.
func New(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     term.Enabled(),
		DisableColors:   !term.Enabled(),
	})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
