package config

import (
	"github.com/kris-hansen/hwflow/utils/logger"
)

// Verbose and Debug are set from the root command flags
var (
	Verbose bool
	Debug   bool
)

// VerboseLog logs when --verbose or --debug is active
func VerboseLog(format string, args ...interface{}) {
	if Verbose || Debug {
		logger.Logger.Infof(format, args...)
	}
}

// DebugLog logs only when --debug is active
func DebugLog(format string, args ...interface{}) {
	if Debug {
		logger.Logger.Debugf("[DEBUG] "+format, args...)
	}
}
