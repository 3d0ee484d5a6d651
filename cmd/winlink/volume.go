//go:build windows

package main

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/Microsoft/go-winlink/internal/appargs"
	"github.com/Microsoft/go-winlink/pkg/fs"
	"github.com/Microsoft/go-winlink/pkg/volmount"
)

var volumeCommand = &cli.Command{
	Name:    "volume",
	Aliases: []string{"vol"},
	Usage:   "manage volume mount points",
	Subcommands: []*cli.Command{
		{
			Name:      "name",
			Usage:     "print the volume GUID path of the volume mounted at PATH",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				return printString(c, volmount.VolumeName)
			},
		},
		{
			Name:      "paths",
			Usage:     "list the drive letters and directories VOLUME is mounted at",
			ArgsUsage: "VOLUME",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				paths, err := volmount.MountPaths(c.Args().First())
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(c.App.Writer, p)
				}
				return nil
			},
		},
		{
			Name:      "fstype",
			Usage:     "print the file system of the drive PATH is on",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				return printString(c, fs.GetFileSystemType)
			},
		},
		{
			Name:      "mount",
			Usage:     "mount VOLUME at the empty directory PATH",
			ArgsUsage: "PATH VOLUME",
			Before:    appargs.Validate(appargs.RequiredNonEmpty, appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				return volmount.Mount(c.Args().Get(0), c.Args().Get(1))
			},
		},
		{
			Name:      "unmount",
			Aliases:   []string{"umount"},
			Usage:     "remove the volume mount point at PATH",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Action: func(c *cli.Context) error {
				return volmount.Unmount(c.Args().First())
			},
		},
	},
}

var removeCommand = &cli.Command{
	Name:      "remove",
	Aliases:   []string{"rm"},
	Usage:     "delete PATH and everything below it without following junctions or symbolic links",
	ArgsUsage: "PATH",
	Before:    appargs.Validate(appargs.RequiredNonEmpty),
	Action: func(c *cli.Context) error {
		return fs.RemoveAll(c.Args().First())
	},
}

// printString prints the result of applying f to the first argument.
func printString(c *cli.Context, f func(string) (string, error)) error {
	s, err := f(c.Args().First())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, s)
	return err
}
