// Package fs holds file system helpers that are aware of junction points and
// symbolic links.
package fs

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/stringbuffer"
)

// ErrInvalidPath is returned when the location of a file path doesn't begin with a driver letter.
var ErrInvalidPath = errors.New("the path provided to GetFileSystemType must start with a drive letter")

// GetFileSystemType obtains the type of a file system through GetVolumeInformation, for
// example "NTFS" or "ReFS". Junction points need one of those two.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getvolumeinformationw
func GetFileSystemType(path string) (string, error) {
	if len(path) < 2 || path[1] != ':' || !isDriveLetter(path[0]) {
		return "", ErrInvalidPath
	}
	root := path[:2] + `\`

	p, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return "", &winlink.PlatformError{Op: "GetVolumeInformation", Path: root, Err: err}
	}
	b := stringbuffer.NewWString()
	defer b.Free()
	if err := windows.GetVolumeInformation(p, nil, 0, nil, nil, nil, b.Pointer(), b.Cap()); err != nil {
		return "", &winlink.PlatformError{Op: "GetVolumeInformation", Path: root, Err: err}
	}
	fsType := b.String()
	logrus.WithFields(logrus.Fields{
		"path":   root,
		"fsType": fsType,
	}).Debug("got file system type")
	return fsType, nil
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
