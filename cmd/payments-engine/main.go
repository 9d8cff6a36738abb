// Command payments-engine reads a transaction stream from a CSV file and
// prints the resulting per-client account snapshot to stdout.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"payments-engine/internal/runner"
)

func main() {
	app := &cli.App{
		Name:      "payments-engine",
		Usage:     "stream a transaction ledger and emit final account balances",
		ArgsUsage: "<input.csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn, or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("missing input file argument", 1)
			}
			return runner.Run(c.Context, runner.Options{
				InputPath: c.Args().First(),
				LogLevel:  c.String("log-level"),
			})
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	var fatal *runner.FatalError
	if errors.As(err, &fatal) {
		return fatal.Code
	}
	return 1
}
