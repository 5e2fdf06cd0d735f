package main

import (
	"fmt"
	"os"

	"github.com/temirov/ghlink/cmd/cli"
	"github.com/temirov/ghlink/internal/ui"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the ghlink command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		if !ui.WasReported(executionError) {
			fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		}
		os.Exit(1)
	}
}
