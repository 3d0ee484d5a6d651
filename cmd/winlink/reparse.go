//go:build windows

package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	cli "github.com/urfave/cli/v2"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/appargs"
)

var reparseCommand = &cli.Command{
	Name:  "reparse",
	Usage: "inspect raw reparse data",
	Subcommands: []*cli.Command{
		{
			Name:      "dump",
			Usage:     "print the reparse tag and target of PATH",
			ArgsUsage: "PATH",
			Before:    appargs.Validate(appargs.RequiredNonEmpty),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  flagRaw,
					Usage: "also hex dump the reparse data buffer",
				},
			},
			Action: dumpReparsePoint,
		},
	},
}

func dumpReparsePoint(c *cli.Context) error {
	b, err := winlink.GetReparsePoint(c.Args().First())
	if err != nil {
		return err
	}
	tag, err := winlink.DecodeReparseTag(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "tag: %s\n", tag)
	fmt.Fprintf(c.App.Writer, "name surrogate: %t\n", tag.IsNameSurrogate())

	// other kinds of reparse point only get their tag shown
	rp, err := winlink.DecodeReparsePoint(b)
	var uerr *winlink.UnsupportedReparsePointError
	switch {
	case err == nil:
		fmt.Fprintf(c.App.Writer, "target: %s\n", rp.Target)
	case !errors.As(err, &uerr):
		return err
	}

	if c.Bool(flagRaw) {
		fmt.Fprint(c.App.Writer, hex.Dump(b))
	}
	return nil
}
