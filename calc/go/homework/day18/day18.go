// Package day18 sums a homework sheet of expressions under both sets of
// operator rules.
package day18

import (
	"context"
	"fmt"
	"io"

	"github.com/aoc2020/calc/calc/go/batch"
	"github.com/aoc2020/calc/calc/go/interpreter"
	"github.com/aoc2020/calc/go/skerr"
	"github.com/aoc2020/calc/go/urfavecli"
	"github.com/dustin/go-humanize"
	cli "github.com/urfave/cli/v2"
)

const (
	inputFlagName   = "input"
	workersFlagName = "workers"
	rawFlagName     = "raw"
)

// Parts maps each puzzle part to the policy it is solved with.
var Parts = []interpreter.Policy{
	interpreter.LeftToRight,
	interpreter.AdditionFirst,
}

// Command returns the day18 command.
func Command() *cli.Command {
	return &cli.Command{
		Name:        "day18",
		Usage:       "homework day18 --input=FILE",
		Description: "Prints the sum of every line of FILE, first evaluating left to right, then with addition before multiplication.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     inputFlagName,
				Usage:    "Homework sheet, one expression per line.",
				Required: true,
			},
			&cli.IntFlag{
				Name:  workersFlagName,
				Usage: "Number of lines evaluated at once. 0 means GOMAXPROCS.",
			},
			&cli.BoolFlag{
				Name:  rawFlagName,
				Usage: "Print sums without thousands separators.",
			},
		},
		Action: func(c *cli.Context) error {
			urfavecli.LogFlags(c)
			return Run(c.Context, c.App.Writer, c.String(inputFlagName), c.Int(workersFlagName), c.Bool(rawFlagName))
		},
	}
}

// Run writes one "Part N: SUM" line per entry in Parts.
func Run(ctx context.Context, w io.Writer, path string, workers int, raw bool) error {
	for i, policy := range Parts {
		res, err := batch.New(batch.Config{Policy: policy, Workers: workers}).SumFile(ctx, path)
		if err != nil {
			return skerr.Wrapf(err, "part %d", i+1)
		}
		sum := humanize.Comma(res.Sum)
		if raw {
			sum = fmt.Sprint(res.Sum)
		}
		if _, err := fmt.Fprintf(w, "Part %d: %s\n", i+1, sum); err != nil {
			return skerr.Wrap(err)
		}
	}
	return nil
}
