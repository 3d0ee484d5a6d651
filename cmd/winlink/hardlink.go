//go:build windows

package main

import (
	cli "github.com/urfave/cli/v2"

	"github.com/Microsoft/go-winlink/internal/appargs"
	"github.com/Microsoft/go-winlink/pkg/hardlink"
)

var hardlinkCommand = &cli.Command{
	Name:    "hardlink",
	Aliases: []string{"h"},
	Usage:   "manage hard links",
	Subcommands: []*cli.Command{
		{
			Name:      "create",
			Usage:     "add PATH as another name for the file EXISTING",
			ArgsUsage: "PATH EXISTING",
			Before:    appargs.Validate(appargs.RequiredNonEmpty, appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				return hardlink.Create(c.Args().Get(0), c.Args().Get(1))
			},
		},
	},
}
