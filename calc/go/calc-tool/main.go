// Command-line application for evaluating arithmetic expressions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aoc2020/calc/calc/go/batch"
	"github.com/aoc2020/calc/calc/go/config"
	"github.com/aoc2020/calc/calc/go/interpreter"
	"github.com/aoc2020/calc/calc/go/lexer"
	"github.com/aoc2020/calc/go/skerr"
	"github.com/aoc2020/calc/go/sklog"
	"github.com/aoc2020/calc/go/sklog/stdlogging"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// toolEnv holds the flag values shared by all the subcommands.
type toolEnv struct {
	logToStdErr     bool
	policy          string
	leftToRight     bool
	configFile      string
	workers         int
	continueOnError bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	env := &toolEnv{}

	cmd := &cobra.Command{
		Use:          "calc-tool [sub]",
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			if env.logToStdErr {
				sklog.SetLogger(stdlogging.New(os.Stderr))
			} else {
				sklog.SetLogger(nil)
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&env.logToStdErr, "logtostderr", false, "Otherwise logs are not produced.")
	cmd.PersistentFlags().StringVar(&env.policy, "policy", interpreter.Conventional.String(), "Operator precedence: left_to_right, conventional or addition_first.")
	cmd.PersistentFlags().BoolVar(&env.leftToRight, "left_to_right", false, "Shorthand for --policy=left_to_right. If false, --policy=conventional.")

	evalCmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate each expression and print its value.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  env.evalAction,
	}

	tokensCmd := &cobra.Command{
		Use:   "tokens EXPR",
		Short: "Print the tokens of an expression.",
		Args:  cobra.ExactArgs(1),
		RunE:  env.tokensAction,
	}

	sumCmd := &cobra.Command{
		Use:   "sum FILE",
		Short: "Sum the values of every line of FILE.",
		Long:  "Evaluates every non-blank line of FILE and prints the sum. Flags override the values in --config.",
		Args:  cobra.ExactArgs(1),
		RunE:  env.sumAction,
	}
	sumCmd.Flags().StringVar(&env.configFile, "config", "", "JSON5 batch config file.")
	sumCmd.Flags().IntVar(&env.workers, "workers", 0, "Number of lines evaluated at once. 0 means GOMAXPROCS.")
	sumCmd.Flags().BoolVar(&env.continueOnError, "continue_on_error", false, "Skip lines that fail to evaluate.")

	cmd.AddCommand(
		evalCmd,
		tokensCmd,
		sumCmd,
	)
	return cmd
}

// resolvePolicy returns the policy named by the flags, --left_to_right
// taking precedence over --policy when set.
func (e *toolEnv) resolvePolicy(c *cobra.Command) (interpreter.Policy, error) {
	if c.Flags().Changed("left_to_right") {
		return interpreter.PolicyFromLeftToRight(e.leftToRight), nil
	}
	return interpreter.ParsePolicy(e.policy)
}

func (e *toolEnv) evalAction(c *cobra.Command, args []string) error {
	policy, err := e.resolvePolicy(c)
	if err != nil {
		return err
	}
	for _, expr := range args {
		v, err := interpreter.Eval(expr, policy)
		if err != nil {
			return skerr.Wrapf(err, "evaluating %q", expr)
		}
		fmt.Fprintln(c.OutOrStdout(), v)
	}
	return nil
}

func (e *toolEnv) tokensAction(c *cobra.Command, args []string) error {
	tokens, err := lexer.Tokenize(args[0])
	if err != nil {
		return err
	}
	writeTokens(c.OutOrStdout(), tokens)
	return nil
}

func writeTokens(w io.Writer, tokens []lexer.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Value", "Offset"})
	for _, tok := range tokens {
		value := ""
		if tok.Kind == lexer.Integer {
			value = strconv.FormatInt(tok.Value, 10)
		}
		table.Append([]string{tok.Kind.String(), value, strconv.Itoa(tok.Pos)})
	}
	table.Render()
}

// batchConfig merges --config with the flags set on the command line.
func (e *toolEnv) batchConfig(c *cobra.Command) (*config.BatchConfig, error) {
	cfg := &config.BatchConfig{Policy: interpreter.Conventional.String()}
	if e.configFile != "" {
		var err error
		cfg, err = config.Load(e.configFile)
		if err != nil {
			return nil, err
		}
	}
	if c.Flags().Changed("left_to_right") || c.Flags().Changed("policy") {
		policy, err := e.resolvePolicy(c)
		if err != nil {
			return nil, err
		}
		cfg.Policy = policy.String()
	}
	if c.Flags().Changed("workers") {
		cfg.Workers = e.workers
	}
	if c.Flags().Changed("continue_on_error") {
		cfg.ContinueOnError = e.continueOnError
	}
	return cfg, cfg.Validate()
}

func (e *toolEnv) sumAction(c *cobra.Command, args []string) error {
	cfg, err := e.batchConfig(c)
	if err != nil {
		return err
	}
	batchCfg, err := cfg.Batch()
	if err != nil {
		return err
	}
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}

	res, err := batch.New(batchCfg).SumFile(ctx, args[0])
	if err != nil {
		var merr *multierror.Error
		if !cfg.ContinueOnError || !errors.As(err, &merr) {
			return err
		}
		warn := color.New(color.FgYellow)
		for _, lineErr := range merr.Errors {
			_, _ = warn.Fprintf(c.ErrOrStderr(), "skipped: %s\n", lineErr)
		}
	}
	fmt.Fprintf(c.OutOrStdout(), "%s\n", humanize.Comma(res.Sum))
	sklog.Infof("%s lines, %d failed", humanize.Comma(int64(res.Lines)), res.Failed)
	return nil
}
