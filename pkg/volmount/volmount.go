//go:build windows

// Package volmount mounts volumes on empty NTFS directories. A volume mount
// point is a mount point reparse point whose substitute name is a volume GUID
// path rather than a directory.
package volmount

import (
	"errors"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/stringbuffer"
)

const (
	volumeGUIDPrefix = `\\?\Volume{`
	// the decoded mount point target, once \??\ is stripped
	volumeTargetPrefix = `Volume{`
)

// slashed returns p cleaned and ending in a backslash, as the volume APIs
// require.
func slashed(p string) string {
	p = filepath.Clean(p)
	if p[len(p)-1] != filepath.Separator {
		p += string(filepath.Separator)
	}
	return p
}

// Mount mounts volume (in format '\\?\Volume{GUID}\') at the empty directory
// path.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-setvolumemountpointw
func Mount(path, volume string) error {
	if !strings.HasPrefix(volume, volumeGUIDPrefix) {
		return pkgerrors.Errorf("unable to mount non-volume path %s", volume)
	}
	target, volume := slashed(path), slashed(volume)

	targetP, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return pkgerrors.Wrapf(err, "unable to utf16-ise %s", target)
	}
	volumeP, err := windows.UTF16PtrFromString(volume)
	if err != nil {
		return pkgerrors.Wrapf(err, "unable to utf16-ise %s", volume)
	}
	if err := windows.SetVolumeMountPoint(targetP, volumeP); err != nil {
		return &winlink.PlatformError{Op: "SetVolumeMountPoint", Path: target, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"path":   target,
		"volume": volume,
	}).Debug("mounted volume")
	return nil
}

// Unmount removes the volume mount point at path. The directory stays.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-deletevolumemountpointw
func Unmount(path string) error {
	target := slashed(path)
	targetP, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return pkgerrors.Wrapf(err, "unable to utf16-ise %s", target)
	}
	if err := windows.DeleteVolumeMountPoint(targetP); err != nil {
		return &winlink.PlatformError{Op: "DeleteVolumeMountPoint", Path: target, Err: err}
	}
	logrus.WithField("path", target).Debug("unmounted volume")
	return nil
}

// VolumeName returns the volume GUID path (in format '\\?\Volume{GUID}\') of
// the volume mounted at path, which is a drive root or a volume mount point.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getvolumenameforvolumemountpointw
func VolumeName(path string) (string, error) {
	target := slashed(path)
	targetP, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "unable to utf16-ise %s", target)
	}

	// the pooled buffer exceeds the 50 characters the documentation asks for
	b := stringbuffer.NewWString()
	defer b.Free()
	if err := windows.GetVolumeNameForVolumeMountPoint(targetP, b.Pointer(), b.Cap()); err != nil {
		return "", &winlink.PlatformError{Op: "GetVolumeNameForVolumeMountPoint", Path: target, Err: err}
	}
	return b.String(), nil
}

// MountPaths returns every drive letter and mount point directory that volume
// (in format '\\?\Volume{GUID}\') is mounted at.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getvolumepathnamesforvolumenamew
func MountPaths(volume string) ([]string, error) {
	volume = slashed(volume)
	volumeP, err := windows.UTF16PtrFromString(volume)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "unable to utf16-ise %s", volume)
	}

	b := stringbuffer.NewWString()
	defer b.Free()
	s, err := b.Fill(func(buf *uint16, size uint32) (uint32, error) {
		var n uint32
		err := windows.GetVolumePathNamesForVolumeName(volumeP, buf, size, &n)
		return n, err
	})
	if err != nil {
		return nil, &winlink.PlatformError{Op: "GetVolumePathNamesForVolumeName", Path: volume, Err: err}
	}
	return splitMultiString(s), nil
}

// splitMultiString splits a list of NUL-terminated strings that ends with an
// extra NUL.
func splitMultiString(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// IsVolumeMountPoint reports whether path is a mount point reparse point
// that mounts a volume, as opposed to a junction to a directory.
func IsVolumeMountPoint(path string) (bool, error) {
	rp, err := winlink.ReadReparsePoint(path)
	if errors.Is(err, winlink.ErrNotReparsePoint) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if !rp.IsMountPoint || !strings.HasPrefix(rp.Target, volumeTargetPrefix) {
		return false, nil
	}
	_, err = VolumeGUID(rp.Target)
	return err == nil, nil
}

// VolumeGUID parses the GUID out of a volume GUID path. Both the
// '\\?\Volume{GUID}\' form and the bare 'Volume{GUID}\' form a volume mount
// point decodes to are accepted.
func VolumeGUID(volume string) (windows.GUID, error) {
	s := strings.TrimPrefix(volume, `\\?\`)
	s = strings.TrimSuffix(s, `\`)
	if !strings.HasPrefix(s, volumeTargetPrefix) {
		return windows.GUID{}, pkgerrors.Errorf("%s is not a volume GUID path", volume)
	}
	g, err := windows.GUIDFromString(s[len(volumeTargetPrefix)-1:])
	if err != nil {
		return windows.GUID{}, pkgerrors.Wrapf(err, "invalid volume GUID path %s", volume)
	}
	return g, nil
}
