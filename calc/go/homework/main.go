// Command homework runs the puzzle solutions built on the calc packages.
package main

import (
	"os"

	"github.com/aoc2020/calc/calc/go/homework/day18"
	"github.com/aoc2020/calc/go/sklog"
	cli "github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "homework",
		Usage: "homework solves the expression puzzles of day 18.",
		Commands: []*cli.Command{
			day18.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		sklog.Fatal(err)
	}
}
