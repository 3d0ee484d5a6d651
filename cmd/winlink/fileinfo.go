//go:build windows

package main

import (
	"fmt"
	"text/tabwriter"

	cli "github.com/urfave/cli/v2"

	"github.com/Microsoft/go-winlink/internal/appargs"
	"github.com/Microsoft/go-winlink/pkg/fileinfo"
)

var fileInfoCommand = &cli.Command{
	Name:      "fileinfo",
	Aliases:   []string{"fi"},
	Usage:     "print the identity of PATH without following links",
	ArgsUsage: "PATH",
	Before:    appargs.Validate(appargs.RequiredNonEmpty),
	Action: func(c *cli.Context) error {
		fi, err := fileinfo.Get(c.Args().First())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(c.App.Writer, 0, 0, 1, ' ', 0)
		fmt.Fprintf(w, "volume\t%08x\n", fi.VolumeSerialNumber)
		fmt.Fprintf(w, "index\t%016x\n", fi.FileIndex)
		fmt.Fprintf(w, "links\t%d\n", fi.LinkCount)
		fmt.Fprintf(w, "attributes\t%#x\n", fi.Attributes)
		fmt.Fprintf(w, "directory\t%t\n", fi.IsDir())
		if fi.IsReparsePoint() {
			fmt.Fprintf(w, "reparse tag\t%s\n", fi.ReparseTag)
		}
		return w.Flush()
	},
}
