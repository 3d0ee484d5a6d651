//go:build windows

// Package longpath converts between the long, short (8.3) and final forms of
// a path.
package longpath

import (
	"strings"

	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/fs"
	"github.com/Microsoft/go-winlink/internal/stringbuffer"
)

// Long expands every 8.3 component of path. path must exist.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getlongpathnamew
func Long(path string) (string, error) {
	return convert("GetLongPathName", path, windows.GetLongPathName)
}

// Short returns the 8.3 form of path. Components without a short name, for
// example on volumes with 8.3 names disabled, are returned unchanged.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getshortpathnamew
func Short(path string) (string, error) {
	return convert("GetShortPathName", path, windows.GetShortPathName)
}

func convert(op, path string, f func(path *uint16, buf *uint16, buflen uint32) (uint32, error)) (string, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return "", &winlink.PlatformError{Op: op, Path: path, Err: err}
	}
	b := stringbuffer.NewWString()
	defer b.Free()
	s, err := b.Fill(func(buf *uint16, size uint32) (uint32, error) {
		return f(p, buf, size)
	})
	if err != nil {
		return "", &winlink.PlatformError{Op: op, Path: path, Err: err}
	}
	return s, nil
}

// Final returns path with every junction point and symbolic link along it
// resolved, in DOS form without the \\?\ prefix.
func Final(path string) (string, error) {
	h, err := fs.CreateFile(path,
		fs.FILE_ANY_ACCESS,
		fs.FILE_SHARE_VALID_FLAGS,
		nil,
		fs.OPEN_EXISTING,
		fs.FILE_FLAG_BACKUP_SEMANTICS,
		fs.NullHandle)
	if err != nil {
		return "", &winlink.PlatformError{Op: "CreateFile", Path: path, Err: err}
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	s, err := fs.GetFinalPathNameByHandle(h, fs.FILE_NAME_NORMALIZED|fs.VOLUME_NAME_DOS)
	if err != nil {
		return "", &winlink.PlatformError{Op: "GetFinalPathNameByHandle", Path: path, Err: err}
	}
	switch {
	case strings.HasPrefix(s, `\\?\UNC\`):
		s = `\\` + s[len(`\\?\UNC\`):]
	case strings.HasPrefix(s, `\\?\`):
		s = s[len(`\\?\`):]
	}
	return s, nil
}
