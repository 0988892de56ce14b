// Package batch evaluates a file of expressions, one per line, and sums the
// results.
package batch

import (
	"context"
	"io"
	"runtime"
	"strings"

	"github.com/aoc2020/calc/calc/go/interpreter"
	"github.com/aoc2020/calc/go/metrics2"
	"github.com/aoc2020/calc/go/skerr"
	"github.com/aoc2020/calc/go/sklog"
	"github.com/aoc2020/calc/go/timer"
	"github.com/aoc2020/calc/go/util"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

const (
	linesEvaluatedMetric = "calc_batch_lines_evaluated"
	linesFailedMetric    = "calc_batch_lines_failed"
	lastSumMetric        = "calc_batch_last_sum"
	lineTimerName        = "calc_batch_line"
)

// Config controls a batch run.
type Config struct {
	Policy interpreter.Policy

	// Workers is the maximum number of lines evaluated at once. Values <= 0
	// mean runtime.GOMAXPROCS(0).
	Workers int

	// ContinueOnError skips failing lines. Their errors are returned together
	// with the partial Result.
	ContinueOnError bool
}

// Result is the outcome of a batch run.
type Result struct {
	// Sum of the values of every line that evaluated successfully.
	Sum int64

	// Lines is the number of non-blank lines that were evaluated.
	Lines int

	// Failed is the number of Lines that returned an error.
	Failed int
}

// Evaluator sums batches of expressions under a single Config.
type Evaluator struct {
	cfg       Config
	tags      map[string]string
	evaluated metrics2.Counter
	failed    metrics2.Counter
	lastSum   metrics2.Int64Metric
}

// New returns an Evaluator that reports to the default metrics client.
func New(cfg Config) *Evaluator {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	tags := map[string]string{"policy": cfg.Policy.String()}
	return &Evaluator{
		cfg:       cfg,
		tags:      tags,
		evaluated: metrics2.GetCounter(linesEvaluatedMetric, tags),
		failed:    metrics2.GetCounter(linesFailedMetric, tags),
		lastSum:   metrics2.GetInt64Metric(lastSumMetric, tags),
	}
}

// Config returns the effective configuration of e.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Sum evaluates every non-blank line with a fresh interpreter and adds up the
// values. Errors are annotated with the 1-based line number.
func (e *Evaluator) Sum(ctx context.Context, lines []string) (Result, error) {
	defer timer.New("batch sum").Stop()

	values := make([]int64, len(lines))
	lineErrs := make([]error, len(lines))
	blank := make([]bool, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, line := range lines {
		i, line := i, line
		if strings.TrimSpace(line) == "" {
			blank[i] = true
			continue
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := metrics2.NewTimer(lineTimerName, e.tags)
			v, err := interpreter.Eval(line, e.cfg.Policy)
			t.Stop()
			e.evaluated.Inc(1)
			if err != nil {
				e.failed.Inc(1)
				err = skerr.Wrapf(err, "line %d", i+1)
				if e.cfg.ContinueOnError {
					sklog.Warningf("Skipping: %s", err)
					lineErrs[i] = err
					return nil
				}
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, skerr.Wrap(err)
	}

	var res Result
	var merr *multierror.Error
	for i := range lines {
		if blank[i] {
			continue
		}
		res.Lines++
		if lineErrs[i] != nil {
			res.Failed++
			merr = multierror.Append(merr, lineErrs[i])
			continue
		}
		res.Sum += values[i]
	}
	e.lastSum.Update(res.Sum)
	sklog.Infof("Summed %d lines (%d failed) with policy %s: %d", res.Lines, res.Failed, e.cfg.Policy, res.Sum)
	return res, merr.ErrorOrNil()
}

// SumReader is Sum over the lines of r.
func (e *Evaluator) SumReader(ctx context.Context, r io.Reader) (Result, error) {
	lines, err := util.ReadLines(r)
	if err != nil {
		return Result{}, skerr.Wrap(err)
	}
	return e.Sum(ctx, lines)
}

// SumFile is Sum over the lines of the file at path.
func (e *Evaluator) SumFile(ctx context.Context, path string) (Result, error) {
	var res Result
	err := util.WithReadFile(path, func(r io.Reader) error {
		var err error
		res, err = e.SumReader(ctx, r)
		return err
	})
	if err != nil {
		return res, skerr.Wrapf(err, "summing %s", path)
	}
	return res, nil
}
