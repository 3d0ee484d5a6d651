//go:build windows

// Package junction creates, inspects and removes NTFS junction points:
// directories that the file system transparently redirects to another
// directory. Junctions only work on NTFS volumes.
package junction

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/fs"
)

// Create makes path a junction point that redirects to the directory target.
//
// target is resolved to an absolute path first and must be an existing
// directory, else ErrTargetNotFound is returned. If path is already a
// directory, ErrAlreadyExists is returned unless overwrite is set, in which
// case the existing (empty) directory or reparse point is converted in place.
// A file at path is always ErrAlreadyExists.
// Otherwise the directory is created, along with any missing parents.
func Create(path, target string, overwrite bool) (err error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve junction target %s", target)
	}
	target = abs
	if fi, err := os.Stat(target); err != nil || !fi.IsDir() {
		return errors.Wrapf(winlink.ErrTargetNotFound, "junction %s -> %s", path, target)
	}

	created := false
	isDir, err := fs.IsDir(path)
	switch {
	case err == nil && !isDir:
		// a file cannot be converted, whatever overwrite says
		return errors.Wrapf(winlink.ErrAlreadyExists, "junction %s is a file", path)
	case isDir:
		if !overwrite {
			return errors.Wrapf(winlink.ErrAlreadyExists, "junction %s", path)
		}
	default:
		if err := os.MkdirAll(path, 0o777); err != nil {
			return &winlink.PlatformError{Op: "CreateDirectory", Path: path, Err: err}
		}
		created = true
	}
	defer func() {
		if err != nil && created {
			_ = os.Remove(path)
		}
	}()

	b, err := winlink.EncodeJunction(target)
	if err != nil {
		return err
	}

	h, err := winlink.OpenReparsePoint(path, fs.GENERIC_WRITE)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	if err := winlink.SetReparsePoint(h, b); err != nil {
		return withPath(err, path)
	}

	logrus.WithFields(logrus.Fields{
		"path":      path,
		"target":    target,
		"overwrite": overwrite,
	}).Debug("created junction point")
	return nil
}

// Delete removes the junction point at path together with the directory
// entry itself. The target directory and its contents are left alone.
//
// Delete does nothing if path does not exist, and returns ErrNotReparsePoint
// if path is a file.
func Delete(path string) error {
	isDir, err := fs.IsDir(path)
	if isNotExist(err) {
		return nil
	} else if err != nil {
		return &winlink.PlatformError{Op: "GetFileAttributes", Path: path, Err: err}
	}
	if !isDir {
		return errors.Wrapf(winlink.ErrNotReparsePoint, "junction %s", path)
	}

	if err := deleteReparsePoint(path); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return &winlink.PlatformError{Op: "RemoveDirectory", Path: path, Err: err}
	}

	logrus.WithField("path", path).Debug("deleted junction point")
	return nil
}

func deleteReparsePoint(path string) error {
	h, err := winlink.OpenReparsePoint(path, fs.GENERIC_WRITE)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	return withPath(winlink.DeleteReparsePoint(h, winlink.EncodeEmpty()), path)
}

// Exists reports whether path is a directory holding a junction point or
// directory symbolic link.
func Exists(path string) (bool, error) {
	isDir, err := fs.IsDir(path)
	if isNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, &winlink.PlatformError{Op: "GetFileAttributes", Path: path, Err: err}
	}
	if !isDir {
		return false, nil
	}

	if _, err := winlink.GetTarget(path); errors.Is(err, winlink.ErrNotReparsePoint) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// GetTarget returns the directory the junction point at path redirects to. It
// returns ErrNotReparsePoint if path is not a junction point or symbolic link.
func GetTarget(path string) (string, error) {
	return winlink.GetTarget(path)
}

func isNotExist(err error) bool {
	return errors.Is(err, windows.ERROR_FILE_NOT_FOUND) || errors.Is(err, windows.ERROR_PATH_NOT_FOUND)
}

func withPath(err error, path string) error {
	if perr := (&winlink.PlatformError{}); errors.As(err, &perr) && perr.Path == "" {
		perr.Path = path
	}
	return err
}
