//go:build windows

// Package symlink creates and inspects NTFS symbolic links.
package symlink

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/osversion"
)

// Not defined by golang.org/x/sys/windows.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-createsymboliclinkw#parameters
//
//nolint:revive,stylecheck // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const SYMBOLIC_LINK_FLAG_ALLOW_UNPRIVILEGED_CREATE = 0x2

// Create makes path a symbolic link to target. isDir must be set when target
// is a directory.
//
// Creation normally requires SeCreateSymbolicLinkPrivilege. On builds with
// developer mode enabled, unprivileged creation is requested as well.
func Create(path, target string, isDir bool) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &winlink.PlatformError{Op: "CreateSymbolicLink", Path: path, Err: err}
	}
	t, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return &winlink.PlatformError{Op: "CreateSymbolicLink", Path: target, Err: err}
	}

	if err := windows.CreateSymbolicLink(p, t, createFlags(isDir, osversion.Build())); err != nil {
		return &winlink.PlatformError{Op: "CreateSymbolicLink", Path: path, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"path":   path,
		"target": target,
		"dir":    isDir,
	}).Debug("created symbolic link")
	return nil
}

// IsSymbolicLink reports whether path is a symbolic link. Junction points and
// entries without reparse data are not.
func IsSymbolicLink(path string) (bool, error) {
	b, err := winlink.GetReparsePoint(path)
	if errors.Is(err, winlink.ErrNotReparsePoint) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	tag, err := winlink.DecodeReparseTag(b)
	if err != nil {
		return false, err
	}
	return tag == winlink.ReparseTagSymlink, nil
}

// GetTarget returns the print name of the symbolic link at path, which is
// the target as it was given to Create. Junction targets are returned too. It
// returns ErrNotReparsePoint if path is neither.
func GetTarget(path string) (string, error) {
	return winlink.GetTarget(path)
}

func createFlags(isDir bool, build osversion.BuildNumber) uint32 {
	var flags uint32
	if isDir {
		flags |= windows.SYMBOLIC_LINK_FLAG_DIRECTORY
	}
	// older builds reject the flag with ERROR_INVALID_PARAMETER
	if build >= osversion.RS2 {
		flags |= SYMBOLIC_LINK_FLAG_ALLOW_UNPRIVILEGED_CREATE
	}
	return flags
}
