package app

import (
	"strings"

	"github.com/dealdock/dealdock/pkg/logger"
)

// ConfigureLogging initialises the global logger at the configured level,
// falling back to info when the config leaves it blank.
func ConfigureLogging(level string) error {
	if level = strings.TrimSpace(level); level == "" {
		level = "info"
	}
	return logger.Init(level)
}
