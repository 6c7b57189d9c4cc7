package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmanvel/graphrag/pkg/logger"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chunkcli",
		Short:         "Token-budgeted Markdown chunking utility",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error, disabled")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	cmd.PersistentFlags().Bool("log-source", false, "Include source file:line in log output")
	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		logLevel, logJSON, logSource, err := logger.GetLoggerConfig(c)
		if err != nil {
			return err
		}
		return logger.SetupLogger(logLevel, logJSON, logSource)
	}
	cmd.AddCommand(newRunCommand())
	return cmd
}

var errMissingFile = errors.New("chunkcli: --file is required")
