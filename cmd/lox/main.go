// Command lox is the interpreter's CLI entry point: a small main that
// delegates to a cobra command tree and translates the returned error
// into a process exit code.
package main

import (
	"errors"
	"os"

	"github.com/cwbudde/golox/cmd/lox/cmd"
	"github.com/cwbudde/golox/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		os.Exit(cli.ExitOK)
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	os.Exit(1)
}
