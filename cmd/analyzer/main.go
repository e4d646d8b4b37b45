package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/riskibarqy/mpl-analyzer/internal/interfaces/command"
	"github.com/urfave/cli/v2"
)

func main() {
	app := command.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		code := 1
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
