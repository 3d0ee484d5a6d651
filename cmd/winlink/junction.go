//go:build windows

package main

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/Microsoft/go-winlink/internal/appargs"
	"github.com/Microsoft/go-winlink/pkg/junction"
)

var junctionCommand = &cli.Command{
	Name:    "junction",
	Aliases: []string{"j"},
	Usage:   "manage directory junction points",
	Subcommands: []*cli.Command{
		{
			Name:      "create",
			Usage:     "make PATH a junction point redirecting to the directory TARGET",
			ArgsUsage: "PATH TARGET",
			Before:    appargs.Validate(appargs.RequiredNonEmpty, appargs.RequiredNonEmpty),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    flagOverwrite,
					Aliases: []string{"f"},
					Usage:   "convert PATH in place if it is already a directory",
				},
			},
			Action: func(c *cli.Context) error {
				return junction.Create(c.Args().Get(0), c.Args().Get(1), c.Bool(flagOverwrite))
			},
		},
		{
			Name:      "delete",
			Aliases:   []string{"rm"},
			Usage:     "remove the junction point at PATH, leaving its target alone",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				return junction.Delete(c.Args().First())
			},
		},
		{
			Name:      "exists",
			Usage:     "print whether PATH is a junction point",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				ok, err := junction.Exists(c.Args().First())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, ok)
				return err
			},
		},
		{
			Name:      "target",
			Usage:     "print the directory the junction point at PATH redirects to",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				t, err := junction.GetTarget(c.Args().First())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, t)
				return err
			},
		},
	},
}
