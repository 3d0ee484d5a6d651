//go:build windows

package main

import (
	cli "github.com/urfave/cli/v2"

	"github.com/Microsoft/go-winlink/internal/appargs"
	"github.com/Microsoft/go-winlink/pkg/longpath"
)

var pathCommand = &cli.Command{
	Name:  "path",
	Usage: "convert between path forms",
	Subcommands: []*cli.Command{
		pathConvertCommand("long", "expand every 8.3 component of PATH", longpath.Long),
		pathConvertCommand("short", "print the 8.3 form of PATH", longpath.Short),
		pathConvertCommand("final", "resolve every junction and symbolic link along PATH", longpath.Final),
	},
}

func pathConvertCommand(name, usage string, f func(string) (string, error)) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "PATH",
		Before:    appargs.Validate(appargs.RequiredNonEmpty),
		Action: func(c *cli.Context) error {
			return printString(c, f)
		},
	}
}
