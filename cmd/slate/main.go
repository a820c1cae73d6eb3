// cmd/slate/main.go
//
// Entry point for the slate binary. All wiring lives in internal/cli;
// this only translates its result into an exit code.

package main

import (
	"os"

	"github.com/andfors/slate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
