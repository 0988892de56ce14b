// Package urfavecli contains helpers for programs built on
// github.com/urfave/cli/v2.
package urfavecli

import (
	"github.com/aoc2020/calc/go/sklog"
	cli "github.com/urfave/cli/v2"
)

// LogFlags logs the value of every flag of the running command, or of the
// app when no command is running.
func LogFlags(c *cli.Context) {
	flags := c.App.Flags
	if c.Command != nil && len(c.Command.Flags) > 0 {
		flags = c.Command.Flags
	}
	for _, f := range flags {
		name := f.Names()[0]
		sklog.Infof("Flags: --%s=%v", name, c.Value(name))
	}
}
