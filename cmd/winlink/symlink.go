//go:build windows

package main

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/Microsoft/go-winlink/internal/appargs"
	"github.com/Microsoft/go-winlink/pkg/symlink"
)

var symlinkCommand = &cli.Command{
	Name:    "symlink",
	Aliases: []string{"s"},
	Usage:   "manage symbolic links",
	Subcommands: []*cli.Command{
		{
			Name:      "create",
			Usage:     "make PATH a symbolic link to TARGET",
			ArgsUsage: "PATH TARGET",
			Before:    appargs.Validate(appargs.RequiredNonEmpty, appargs.RequiredNonEmpty),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    flagDir,
					Aliases: []string{"d"},
					Usage:   "TARGET is a directory",
				},
			},
			Action: func(c *cli.Context) error {
				return symlink.Create(c.Args().Get(0), c.Args().Get(1), c.Bool(flagDir))
			},
		},
		{
			Name:      "is",
			Usage:     "print whether PATH is a symbolic link",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				ok, err := symlink.IsSymbolicLink(c.Args().First())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, ok)
				return err
			},
		},
		{
			Name:      "target",
			Usage:     "print the target of the symbolic link at PATH",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				t, err := symlink.GetTarget(c.Args().First())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, t)
				return err
			},
		},
	},
}
