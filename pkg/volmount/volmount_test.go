//go:build windows

package volmount

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/pkg/junction"
)

func systemVolume(t *testing.T) string {
	t.Helper()
	v, err := VolumeName(os.Getenv("SystemDrive") + `\`)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(v, volumeGUIDPrefix), v)
	require.True(t, strings.HasSuffix(v, `\`), v)
	return v
}

func TestSystemVolumeMountPaths(t *testing.T) {
	v := systemVolume(t)

	paths, err := MountPaths(v)
	require.NoError(t, err)
	require.Contains(t, paths, strings.ToUpper(os.Getenv("SystemDrive"))+`\`)

	// same volume with the trailing slash left off
	again, err := MountPaths(strings.TrimSuffix(v, `\`))
	require.NoError(t, err)
	require.ElementsMatch(t, paths, again)
}

func TestMountRejectsNonVolume(t *testing.T) {
	require.Error(t, Mount(t.TempDir(), `C:\`))
}

func TestIsVolumeMountPointFalse(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o777))
	j := filepath.Join(dir, "junction")
	require.NoError(t, junction.Create(j, target, false))

	for _, p := range []string{dir, j} {
		ok, err := IsVolumeMountPoint(p)
		require.NoError(t, err)
		require.False(t, ok, p)
	}
}

func TestMountSystemVolume(t *testing.T) {
	v := systemVolume(t)
	mountPoint := filepath.Join(t.TempDir(), "mount")
	require.NoError(t, os.Mkdir(mountPoint, 0o777))

	if err := Mount(mountPoint, v); err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) || errors.Is(err, windows.ERROR_PRIVILEGE_NOT_HELD) {
			t.Skipf("mounting volumes must be done elevated: %s", err)
		}
		t.Fatal(err)
	}
	unmounted := false
	defer func() {
		if !unmounted {
			_ = Unmount(mountPoint)
		}
	}()

	got, err := VolumeName(mountPoint)
	require.NoError(t, err)
	require.Equal(t, v, got, "mount read back incorrectly")

	rp, err := winlink.ReadReparsePoint(mountPoint)
	require.NoError(t, err)
	require.True(t, rp.IsMountPoint, "mount point did not decode as mount point")
	// v starts with \\?\ and the decoded target has \??\ stripped
	require.Equal(t, v[4:], rp.Target)

	ok, err := IsVolumeMountPoint(mountPoint)
	require.NoError(t, err)
	require.True(t, ok)

	paths, err := MountPaths(v)
	require.NoError(t, err)
	found := false
	for _, p := range paths {
		found = found || strings.HasSuffix(strings.ToLower(p), `\mount\`)
	}
	require.True(t, found, "mount point missing from %v", paths)

	require.NoError(t, Unmount(mountPoint))
	unmounted = true

	ok, err = IsVolumeMountPoint(mountPoint)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVolumeGUID(t *testing.T) {
	const s = "{b5aaf1e8-1f65-4d3e-a5d9-2f3e1c6d9f10}"
	want, err := windows.GUIDFromString(s)
	require.NoError(t, err)

	for _, v := range []string{`\\?\Volume` + s + `\`, `\\?\Volume` + s, `Volume` + s + `\`} {
		g, err := VolumeGUID(v)
		require.NoError(t, err, v)
		require.Equal(t, want, g, v)
	}

	for _, v := range []string{`C:\`, `\\?\Volume{nope}\`, `Volume`} {
		_, err := VolumeGUID(v)
		require.Error(t, err, v)
	}

	sys := systemVolume(t)
	_, err = VolumeGUID(sys)
	require.NoError(t, err)
}
