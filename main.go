package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/confsync/cmd/cli"
	"github.com/temirov/confsync/internal/shared"
)

const (
	exitErrorTemplateConstant = "%v\n"
	exitCodeGenericFailure    = 1
	exitCodeMalformedInput    = 2
	exitCodeMissingResource   = 3
	exitCodeDriftDetected     = 4
)

// main executes the confsync command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(resolveExitCode(executionError))
	}
}

func resolveExitCode(executionError error) int {
	switch {
	case errors.Is(executionError, shared.ErrMalformedInput):
		return exitCodeMalformedInput
	case errors.Is(executionError, shared.ErrMissingResource):
		return exitCodeMissingResource
	case errors.Is(executionError, shared.ErrDriftDetected):
		return exitCodeDriftDetected
	default:
		return exitCodeGenericFailure
	}
}
