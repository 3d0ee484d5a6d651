package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/pkg/junction"
)

type fsEntry interface {
	create(parent []uint16) error
}

type file struct {
	name     string
	rawName  []uint16
	readOnly bool
}

func entryName(name string, rawName []uint16) ([]uint16, error) {
	if name != "" && rawName != nil {
		return nil, errors.New("cannot set both name and rawName")
	}
	if name != "" {
		return utf16.Encode([]rune(name)), nil
	}
	return rawName, nil
}

func (f file) create(parent []uint16) error {
	name, err := entryName(f.name, f.rawName)
	if err != nil {
		return err
	}
	p := join(parent, name)
	var attrs uint32
	if f.readOnly {
		attrs |= windows.FILE_ATTRIBUTE_READONLY
	}
	h, err := windows.CreateFile(terminate(p), windows.GENERIC_ALL, 0, nil, windows.CREATE_NEW, attrs, 0)
	if err != nil {
		return pathErr("CreateFile", p, err)
	}
	return windows.CloseHandle(h)
}

type dir struct {
	name     string
	rawName  []uint16
	children []fsEntry
}

func (d dir) create(parent []uint16) error {
	name, err := entryName(d.name, d.rawName)
	if err != nil {
		return err
	}
	p := join(parent, name)
	if err := windows.CreateDirectory(terminate(p), nil); err != nil {
		return pathErr("CreateDirectory", p, err)
	}
	for _, c := range d.children {
		if err := c.create(p); err != nil {
			return err
		}
	}
	return nil
}

type junctionPoint struct {
	name   string
	target string
}

func (j junctionPoint) create(parent []uint16) error {
	return junction.Create(filepath.Join(windows.UTF16ToString(parent), j.name), j.target, false)
}

// TestRemoveAll creates a series of nested filesystem entries (files, directories, and junctions) beneath a temp root,
// then calls RemoveAll on the root, then tests to ensure the contents were deleted.
func TestRemoveAll(t *testing.T) {
	root := t.TempDir()
	t.Logf("Root directory: %s", root)
	rootU16 := utf16.Encode([]rune(root))

	entries := []fsEntry{
		dir{name: "dir", children: []fsEntry{
			dir{name: "childdir", children: []fsEntry{
				file{name: "bar.txt"},
			}},
			file{name: "baz.txt"},
		}},
		dir{name: "emptydir"},
		dir{name: "fakeemptydir", children: []fsEntry{
			file{name: "thisfilewillbedeleted"},
		}},
		file{name: "foo.txt"},
		// Invalid UTF-16: low surrogates at [1:5] without preceding high surrogates.
		file{rawName: []uint16{0x2e, 0xdc6d, 0xdc73, 0xdc79, 0xdc73, 0x30, 0x30, 0x30, 0x31, 0x30, 0x30, 0x30, 0x30, 0x30, 0x30, 0x30, 0x30, 0x35, 0x36, 0x33, 0x39, 0x64, 0x64, 0x35, 0x30, 0x61, 0x37, 0x32, 0x61, 0x62, 0x34, 0x36, 0x36, 0x38, 0x62, 0x33, 0x33}},
		file{name: "readonlyfile", readOnly: true},
	}
	for _, entry := range entries {
		if err := entry.create(rootU16); err != nil {
			t.Fatal(err)
		}
	}

	if err := RemoveAll(root); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Lstat(root); !os.IsNotExist(err) {
		t.Errorf("root dir exists when it should not: %s", root)
	}
}

func TestRemoveAllMissing(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{filepath.Join(dir, "missing"), filepath.Join(dir, "missing", "deeper")} {
		if err := RemoveAll(p); err != nil {
			t.Fatalf("RemoveAll(%s): %s", p, err)
		}
	}
}

// TestRemoveAllDontFollowJunctions creates a junction pointing to another directory, then calls RemoveAll on it, then tests
// to ensure the referenced directory or its contents were not deleted.
func TestRemoveAllDontFollowJunctions(t *testing.T) {
	root := t.TempDir()
	rootU16 := utf16.Encode([]rune(root))
	junctionDir := t.TempDir()
	if err := (file{name: "fileinjunction"}.create(utf16.Encode([]rune(junctionDir)))); err != nil {
		t.Fatal(err)
	}

	entries := []fsEntry{
		junctionPoint{name: "link", target: junctionDir},
		dir{name: "nested", children: []fsEntry{
			junctionPoint{name: "link2", target: junctionDir},
		}},
	}
	for _, entry := range entries {
		if err := entry.create(rootU16); err != nil {
			t.Fatal(err)
		}
	}

	if err := RemoveAll(root); err != nil {
		t.Errorf("RemoveAll failed: %s", err)
	}

	if _, err := os.Lstat(root); !os.IsNotExist(err) {
		t.Errorf("root dir exists when it should not: %s", root)
	}
	if _, err := os.Lstat(filepath.Join(junctionDir, "fileinjunction")); err != nil {
		t.Errorf("file in junction dir may have been deleted when it should not be: %s", err)
	}
}

// TestRemoveAllOnJunction removes a junction given directly as the root.
func TestRemoveAllOnJunction(t *testing.T) {
	target := t.TempDir()
	if err := (file{name: "keep"}.create(utf16.Encode([]rune(target)))); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(t.TempDir(), "link")
	if err := junction.Create(link, target, false); err != nil {
		t.Fatal(err)
	}

	if err := RemoveAll(link); err != nil {
		t.Fatalf("RemoveAll failed: %s", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Errorf("junction exists when it should not: %s", link)
	}
	if _, err := os.Lstat(filepath.Join(target, "keep")); err != nil {
		t.Errorf("junction target was modified: %s", err)
	}
}

// TestRemoveAllShouldFailWhenJunctionDeletionFails makes RemoveDirectory fail on the junction once, to ensure we don't
// recurse into the junction target when that happens.
func TestRemoveAllShouldFailWhenJunctionDeletionFails(t *testing.T) {
	root := t.TempDir()
	rootU16 := utf16.Encode([]rune(root))
	junctionDir := t.TempDir()
	if err := (file{name: "fileinjunction"}.create(utf16.Encode([]rune(junctionDir)))); err != nil {
		t.Fatal(err)
	}
	if err := (junctionPoint{name: "link", target: junctionDir}).create(rootU16); err != nil {
		t.Fatal(err)
	}

	var linkDeleteAttempted bool
	removeDirectory = func(path *uint16) error {
		if _, name := filepath.Split(windows.UTF16PtrToString(path)); !linkDeleteAttempted && name == "link" {
			linkDeleteAttempted = true
			return windows.ERROR_DIR_NOT_EMPTY
		}
		return windows.RemoveDirectory(path)
	}
	t.Cleanup(func() { removeDirectory = windows.RemoveDirectory })

	err := RemoveAll(root)
	var perr *winlink.PlatformError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a platform error, got %v", err)
	}
	if _, name := filepath.Split(perr.Path); perr.Op != "RemoveDirectory" || perr.Code() != windows.ERROR_DIR_NOT_EMPTY || name != "link" {
		t.Errorf("unexpected error: %s", err)
	}

	if _, err := os.Lstat(filepath.Join(junctionDir, "fileinjunction")); err != nil {
		t.Errorf("file in junction dir may have been deleted when it should not be: %s", err)
	}
}
