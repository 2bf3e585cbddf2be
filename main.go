package main

import (
	"os"

	"github.com/pingcraft/pingcraft/cmd"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		os.Exit(1)
	}
}
