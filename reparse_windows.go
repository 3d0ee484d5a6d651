//go:build windows

package winlink

import (
	"errors"

	"golang.org/x/sys/windows"

	"github.com/Microsoft/go-winlink/internal/fs"
)

//nolint:revive,stylecheck // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	FSCTL_SET_REPARSE_POINT    = 0x000900A4
	FSCTL_GET_REPARSE_POINT    = 0x000900A8
	FSCTL_DELETE_REPARSE_POINT = 0x000900AC
)

// OpenReparsePoint opens path without following a junction or symbolic link
// there. It works for files and directories alike. The caller must close the
// returned handle.
func OpenReparsePoint(path string, access fs.AccessMask) (windows.Handle, error) {
	h, err := fs.CreateFile(path,
		access,
		fs.FILE_SHARE_READ|fs.FILE_SHARE_WRITE|fs.FILE_SHARE_DELETE,
		nil,
		fs.OPEN_EXISTING,
		fs.ReparsePointFlags,
		fs.NullHandle)
	if err != nil {
		return windows.InvalidHandle, &PlatformError{Op: "CreateFile", Path: path, Err: err}
	}
	return h, nil
}

// GetReparsePoint returns the raw REPARSE_DATA_BUFFER of path. It returns
// ErrNotReparsePoint if path has no reparse data.
func GetReparsePoint(path string) ([]byte, error) {
	h, err := OpenReparsePoint(path, fs.GENERIC_READ)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	b, err := GetReparsePointByHandle(h)
	if perr := (&PlatformError{}); errors.As(err, &perr) {
		perr.Path = path
	}
	return b, err
}

// GetReparsePointByHandle returns the raw REPARSE_DATA_BUFFER of the file
// or directory open at h.
func GetReparsePointByHandle(h windows.Handle) ([]byte, error) {
	b := make([]byte, MaximumReparseDataBufferSize)
	var n uint32
	err := windows.DeviceIoControl(h, FSCTL_GET_REPARSE_POINT, nil, 0, &b[0], uint32(len(b)), &n, nil)
	if errors.Is(err, windows.ERROR_NOT_A_REPARSE_POINT) {
		return nil, ErrNotReparsePoint
	} else if err != nil {
		return nil, &PlatformError{Op: "FSCTL_GET_REPARSE_POINT", Err: err}
	}
	return b[:n], nil
}

// SetReparsePoint installs the reparse data b on the file or directory open at
// h. The handle needs write access.
func SetReparsePoint(h windows.Handle, b []byte) error {
	var n uint32
	if err := windows.DeviceIoControl(h, FSCTL_SET_REPARSE_POINT, &b[0], uint32(len(b)), nil, 0, &n, nil); err != nil {
		return &PlatformError{Op: "FSCTL_SET_REPARSE_POINT", Err: err}
	}
	return nil
}

// DeleteReparsePoint removes the reparse point open at h. b must be a header
// whose tag matches the installed one, as built by [EncodeEmpty].
func DeleteReparsePoint(h windows.Handle, b []byte) error {
	var n uint32
	if err := windows.DeviceIoControl(h, FSCTL_DELETE_REPARSE_POINT, &b[0], uint32(len(b)), nil, 0, &n, nil); err != nil {
		return &PlatformError{Op: "FSCTL_DELETE_REPARSE_POINT", Err: err}
	}
	return nil
}

// ReadReparsePoint opens path, queries its reparse data and decodes it.
func ReadReparsePoint(path string) (*ReparsePoint, error) {
	b, err := GetReparsePoint(path)
	if err != nil {
		return nil, err
	}
	rp, err := DecodeReparsePoint(b)
	if perr := (&PlatformError{}); errors.As(err, &perr) {
		perr.Path = path
	}
	return rp, err
}

// GetTarget returns the target of the junction point or symbolic link at
// path. It returns ErrNotReparsePoint if path is neither.
func GetTarget(path string) (string, error) {
	rp, err := ReadReparsePoint(path)
	if err != nil {
		return "", err
	}
	return rp.Target, nil
}
