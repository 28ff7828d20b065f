package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/sortable/logging"
)

var (
	logLevel  string
	logFormat string
)

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dndreplay",
		Short:         "Replay drag and drop scenarios against the reordering engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text, zerolog)")

	root.AddCommand(runCmd(), validateCmd())
	return root
}

func newLogger(w io.Writer) (logging.Logger, error) {
	lvl, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	switch logFormat {
	case "zerolog":
		return logging.NewZerologLogger(w, lvl), nil
	case "json", "text":
		cfg := logging.DefaultLoggerConfig()
		cfg.Level = lvl
		cfg.Format = logFormat
		cfg.Output = w
		cfg.Component = "dndreplay"
		return logging.NewLogger(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", logFormat)
	}
}
