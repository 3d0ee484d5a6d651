//go:build windows

// Package hardlink creates NTFS hard links.
package hardlink

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
)

// Create adds path as another name for the existing file. Both names must be
// on the same volume, and existing must not be a directory.
func Create(path, existing string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &winlink.PlatformError{Op: "CreateHardLink", Path: path, Err: err}
	}
	e, err := windows.UTF16PtrFromString(existing)
	if err != nil {
		return &winlink.PlatformError{Op: "CreateHardLink", Path: existing, Err: err}
	}
	if err := windows.CreateHardLink(p, e, 0); err != nil {
		return &winlink.PlatformError{Op: "CreateHardLink", Path: path, Err: err}
	}
	logrus.WithFields(logrus.Fields{
		"path":     path,
		"existing": existing,
	}).Debug("created hard link")
	return nil
}
