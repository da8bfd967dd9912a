package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "info",
		Format: "text",
	}
}

// Apply configures the standard logrus logger
func (c LoggingConfig) Apply() error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	if c.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return nil
}
