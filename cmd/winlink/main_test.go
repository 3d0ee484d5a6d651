//go:build windows

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/appargs"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := app()
	a.ExitErrHandler = nil
	var out, errOut bytes.Buffer
	a.Writer = &out
	a.ErrWriter = &errOut
	err := a.Run(append([]string{"winlink"}, args...))
	return strings.TrimSpace(out.String()), err
}

func TestJunctionCommands(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o777))
	j := filepath.Join(dir, "J")

	_, err := run(t, "junction", "create", j, target)
	require.NoError(t, err)

	out, err := run(t, "junction", "exists", j)
	require.NoError(t, err)
	require.Equal(t, "true", out)

	out, err = run(t, "junction", "target", j)
	require.NoError(t, err)
	require.Equal(t, target, out)

	out, err = run(t, "symlink", "is", j)
	require.NoError(t, err)
	require.Equal(t, "false", out)

	out, err = run(t, "reparse", "dump", j)
	require.NoError(t, err)
	require.Contains(t, out, "tag: MountPoint")
	require.Contains(t, out, "target: "+target)

	_, err = run(t, "junction", "create", j, target)
	require.ErrorIs(t, err, winlink.ErrAlreadyExists)
	_, err = run(t, "junction", "create", "--overwrite", j, target)
	require.NoError(t, err)

	_, err = run(t, "junction", "rm", j)
	require.NoError(t, err)

	out, err = run(t, "junction", "exists", j)
	require.NoError(t, err)
	require.Equal(t, "false", out)
}

func TestFileCommands(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(existing, nil, 0o666))

	_, err := run(t, "hardlink", "create", filepath.Join(dir, "b.txt"), existing)
	require.NoError(t, err)

	out, err := run(t, "fileinfo", existing)
	require.NoError(t, err)
	require.Regexp(t, `links\s+2`, out)
	require.Regexp(t, `directory\s+false`, out)

	out, err = run(t, "path", "final", existing)
	require.NoError(t, err)
	require.True(t, strings.EqualFold(filepath.Base(existing), filepath.Base(out)), out)

	_, err = run(t, "reparse", "dump", existing)
	require.ErrorIs(t, err, winlink.ErrNotReparsePoint)
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"junction", "create", "only-one"},
		{"junction", "target"},
		{"junction", "target", "a", "b"},
		{"hardlink", "create", "", "b"},
		{"path", "long"},
	} {
		_, err := run(t, args...)
		require.ErrorIs(t, err, appargs.ErrInvalidUsage, args)
	}
}

func TestBadLogFormat(t *testing.T) {
	_, err := run(t, "--log-format", "xml", "path", "long", t.TempDir())
	require.ErrorContains(t, err, "logging setup")
}

func TestRemoveCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o777))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep.txt"), nil, 0o666))

	tree := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "a", "b"), 0o777))
	_, err := run(t, "junction", "create", filepath.Join(tree, "a", "link"), target)
	require.NoError(t, err)

	_, err = run(t, "rm", tree)
	require.NoError(t, err)

	_, err = os.Lstat(tree)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(target, "keep.txt"))
	require.NoError(t, err)
}

func TestVolumeCommands(t *testing.T) {
	drive := os.Getenv("SystemDrive") + `\`
	v, err := run(t, "volume", "name", drive)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(v, `\\?\Volume{`), v)

	out, err := run(t, "volume", "paths", v)
	require.NoError(t, err)
	require.Contains(t, strings.Split(out, "\n"), strings.ToUpper(drive))

	out, err = run(t, "volume", "fstype", drive)
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
