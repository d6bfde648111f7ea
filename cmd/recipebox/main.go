// Command recipebox serves a small recipe catalog over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/recipebox/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
