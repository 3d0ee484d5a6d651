//go:build windows

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func setupLogging(w io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	switch format {
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	if w == nil {
		w = os.Stderr
	}
	logrus.SetOutput(w)
	return nil
}
