package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Shows the version of the program",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("%s (%s)\n", version, runtime.Version())
			return nil
		},
	}
)
