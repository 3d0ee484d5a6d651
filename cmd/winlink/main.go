//go:build windows

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
)

// flag names

const (
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagOverwrite = "overwrite"
	flagDir       = "dir"
	flagRaw       = "raw"
)

const (
	logLevelEnvVar  = "WINLINK_LOG_LEVEL"
	logFormatEnvVar = "WINLINK_LOG_FORMAT"
)

const desc = `Create, inspect and remove NTFS junction points, symbolic links and hard links.
Junction and symbolic link paths are never followed unless a command says otherwise.`

func main() {
	// Run() should not return an error because of ExitErrHandler, but just in case ...
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:           "winlink",
		Usage:          "tool for managing NTFS links and reparse points",
		Description:    desc,
		ExitErrHandler: errHandler,
		Before:         beforeApp,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "logrus `level` (trace, debug, info, warning, error)",
				EnvVars: []string{logLevelEnvVar},
				Value:   logrus.WarnLevel.String(),
			},
			&cli.StringFlag{
				Name:    flagLogFormat,
				Usage:   "log `format`: text or json",
				EnvVars: []string{logFormatEnvVar},
				Value:   "text",
			},
		},
		Commands: []*cli.Command{
			junctionCommand,
			symlinkCommand,
			hardlinkCommand,
			fileInfoCommand,
			pathCommand,
			volumeCommand,
			removeCommand,
			reparseCommand,
		},
	}
}

func beforeApp(c *cli.Context) error {
	if err := setupLogging(c.App.ErrWriter, c.String(flagLogLevel), c.String(flagLogFormat)); err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	return nil
}

func errHandler(c *cli.Context, err error) {
	if err == nil {
		return
	}
	n := c.App.Name
	if c.Command != nil {
		if nn := c.Command.FullName(); nn != "" {
			n += " " + nn
		}
	}
	cli.HandleExitCoder(cli.Exit(fmt.Errorf("%s: %w", n, err), 1))
}
