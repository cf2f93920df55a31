// main is the entrypoint for the wastetrack CLI.
package main

import (
	"fmt"
	"os"

	"github.com/kitchensight/wastetrack/cmd"
)

func main() {
	err := cmd.Execute()

	// Stop profiling before exiting, regardless of command outcome.
	if perr := cmd.StopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "⚠️", perr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
