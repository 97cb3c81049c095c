package main

import (
	"os"

	"github.com/porthorian/pwhash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
