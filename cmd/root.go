package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version string

	logLevel  = "info"
	logFormat = "console"

	logger zerolog.Logger

	rootCmd = &cobra.Command{
		Use:           "pingcraft",
		Short:         "Queries Minecraft servers for their status",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			logger, err = newLogger()
			return err
		},
	}
)

func envString(name string, defVal string) string {
	envString := os.Getenv(name)
	if envString == "" {
		return defVal
	}

	return envString
}

func init() {
	envVarPrefix := "PINGCRAFT_"
	logLevel = envString(envVarPrefix+"LOG_LEVEL", logLevel)
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", logLevel, "set the log level")
	logFormat = envString(envVarPrefix+"LOG_FORMAT", logFormat)
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logFormat, "set the log format (console or json)")

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return zerolog.Nop(), err
	}

	switch logFormat {
	case "console":
		return zerolog.New(zerolog.NewConsoleWriter()).
			Level(level).
			With().
			Timestamp().
			Logger(), nil
	case "json":
		return zerolog.New(os.Stderr).
			Level(level).
			With().
			Timestamp().
			Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", logFormat)
	}
}

// Execute executes the root command.
func Execute(v string) error {
	version = v
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
