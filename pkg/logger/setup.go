package logger

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SetupLogger initializes the process-wide default logger from CLI-style
// flag values, mirroring the flags a cobra root command typically exposes.
func SetupLogger(logLevel string, logJSON, logSource bool) error {
	level := InfoLevel
	switch logLevel {
	case "debug":
		level = DebugLevel
	case "info":
		level = InfoLevel
	case "warn":
		level = WarnLevel
	case "error":
		level = ErrorLevel
	case "disabled":
		level = DisabledLevel
	}
	return Init(&Config{
		Level:      level,
		Output:     DefaultConfig().Output,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	})
}

// GetLoggerConfig reads the standard --log-level/--log-json/--log-source
// flags from cmd, as registered by a cobra root command's PersistentFlags.
func GetLoggerConfig(cmd *cobra.Command) (logLevel string, logJSON, logSource bool, err error) {
	logLevel, err = cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, false, fmt.Errorf("logger: read log-level flag: %w", err)
	}
	logJSON, err = cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, false, fmt.Errorf("logger: read log-json flag: %w", err)
	}
	logSource, err = cmd.Flags().GetBool("log-source")
	if err != nil {
		return "", false, false, fmt.Errorf("logger: read log-source flag: %w", err)
	}
	return logLevel, logJSON, logSource, nil
}
