package fs

import (
	"errors"
	"unicode/utf16"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/fs"
	"github.com/Microsoft/go-winlink/pkg/fileinfo"
)

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go removeall_windows.go

// FindFirstFileExW skips the short name lookup, and x/sys only wraps
// FindFirstFile. Its Win32finddata also cuts the name fields one unit short,
// so we bring our own findData too.

//sys findFirstFileExW(pattern *uint16, infoLevel uint32, data *findData, searchOp uint32, searchFilter unsafe.Pointer, flags uint32) (h windows.Handle, err error) [failretval==windows.InvalidHandle] = kernel32.FindFirstFileExW
//sys findNextFileW(findHandle windows.Handle, data *findData) (err error) = kernel32.FindNextFileW

const (
	// https://learn.microsoft.com/en-us/windows/win32/api/minwinbase/ne-minwinbase-findex_info_levels
	findExInfoBasic = 1
	// https://learn.microsoft.com/en-us/windows/win32/api/minwinbase/ne-minwinbase-findex_search_ops
	findExSearchNameMatch = 0
)

// findData represents Windows's WIN32_FIND_DATAW type, minus the trailing
// fields that only exist on Mac.
//
// https://learn.microsoft.com/en-us/windows/win32/api/minwinbase/ns-minwinbase-win32_find_dataw
type findData struct {
	attributes    uint32
	creationTime  windows.Filetime
	accessTime    windows.Filetime
	writeTime     windows.Filetime
	fileSizeHigh  uint32
	fileSizeLow   uint32
	reparseTag    uint32 // dwReserved0, valid when attributes has FILE_ATTRIBUTE_REPARSE_POINT
	reserved1     uint32
	name          [windows.MAX_PATH]uint16
	alternateName [14]uint16
}

// entry is what RemoveAll needs to know about a directory entry before
// deleting it.
type entry struct {
	path  []uint16
	attrs fs.FileAttribute
	tag   winlink.ReparseTag
}

// linkLike reports whether the entry is a junction, symbolic link, or other
// name surrogate whose target must be left alone.
func (e entry) linkLike() bool {
	return e.attrs&fs.FILE_ATTRIBUTE_REPARSE_POINT != 0 && e.tag.IsNameSurrogate()
}

// Mockable for testing.
var removeDirectory = windows.RemoveDirectory

// RemoveAll deletes path and everything below it, like [os.RemoveAll], but
// never descends into a junction point or symbolic link: the link itself is
// removed and its target left untouched.
//
// Children are handled as raw UTF-16, so names that are not valid UTF-16 are
// deleted too. A missing path is not an error.
//
// Concurrent changes are partly tolerated: a directory that gains children
// while it is being emptied is emptied again. An entry that flips between
// file and directory, or has FILE_ATTRIBUTE_READONLY set again after it was
// cleared, makes RemoveAll fail.
func RemoveAll(path string) error {
	fi, err := fileinfo.Get(path)
	if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) || errors.Is(err, windows.ERROR_PATH_NOT_FOUND) {
		return nil
	} else if err != nil {
		return err
	}
	e := entry{
		path:  utf16.Encode([]rune(path)),
		attrs: fs.FileAttribute(fi.Attributes),
		tag:   fi.ReparseTag,
	}
	if err := removeAll(e); err != nil {
		return err
	}
	logrus.WithField("path", path).Debug("removed tree")
	return nil
}

func removeAll(e entry) error {
	if e.attrs&fs.FILE_ATTRIBUTE_DIRECTORY == 0 {
		return removeFile(e)
	}

	for {
		// Only succeeds once the directory is empty. A junction or directory
		// symbolic link is removed here without touching its target.
		err := removeDirectory(terminate(e.path))
		if err == nil || err == windows.ERROR_FILE_NOT_FOUND {
			return nil
		}
		if err != windows.ERROR_DIR_NOT_EMPTY || e.linkLike() {
			return pathErr("RemoveDirectory", e.path, err)
		}
		if err := removeChildren(e.path); err != nil {
			return err
		}
	}
}

func removeFile(e entry) error {
	if e.attrs&fs.FILE_ATTRIBUTE_READONLY != 0 {
		attrs := uint32(e.attrs &^ fs.FILE_ATTRIBUTE_READONLY)
		if err := windows.SetFileAttributes(terminate(e.path), attrs); err == windows.ERROR_FILE_NOT_FOUND {
			return nil
		} else if err != nil {
			return pathErr("SetFileAttributes", e.path, err)
		}
	}
	if err := windows.DeleteFile(terminate(e.path)); err != nil && err != windows.ERROR_FILE_NOT_FOUND {
		return pathErr("DeleteFile", e.path, err)
	}
	return nil
}

func removeChildren(dir []uint16) error {
	var fd findData
	pattern := join(dir, []uint16{'*'})
	find, err := findFirstFileExW(terminate(pattern), findExInfoBasic, &fd, findExSearchNameMatch, nil, 0)
	if err == windows.ERROR_FILE_NOT_FOUND {
		// there should always be "." and "..", but let the caller retry
		return nil
	} else if err != nil {
		return pathErr("FindFirstFileEx", pattern, err)
	}
	defer windows.FindClose(find) //nolint:errcheck

	for {
		name, err := truncAtNull(fd.name[:])
		if err != nil {
			return err
		}
		if !isDots(name) {
			child := entry{
				path:  join(dir, name),
				attrs: fs.FileAttribute(fd.attributes),
				tag:   winlink.ReparseTag(fd.reparseTag),
			}
			if err := removeAll(child); err != nil {
				return err
			}
		}
		if err := findNextFileW(find, &fd); err == windows.ERROR_NO_MORE_FILES {
			return nil
		} else if err != nil {
			return pathErr("FindNextFile", dir, err)
		}
	}
}

func isDots(name []uint16) bool {
	switch len(name) {
	case 1:
		return name[0] == '.'
	case 2:
		return name[0] == '.' && name[1] == '.'
	}
	return false
}

// join appends to a copy of parent so sibling paths never share a backing
// array.
func join(parent, child []uint16) []uint16 {
	p := make([]uint16, 0, len(parent)+1+len(child))
	p = append(p, parent...)
	p = append(p, '\\')
	return append(p, child...)
}

func pathErr(op string, path []uint16, err error) error {
	return &winlink.PlatformError{Op: op, Path: windows.UTF16ToString(path), Err: err}
}

// terminate returns a NUL-terminated copy of path.
func terminate(path []uint16) *uint16 {
	p := make([]uint16, len(path)+1)
	copy(p, path)
	return &p[0]
}

// truncAtNull returns path up to its NUL terminator.
func truncAtNull(path []uint16) ([]uint16, error) {
	for i, u := range path {
		if u == 0 {
			return path[:i], nil
		}
	}
	return nil, errors.New("path is not null terminated")
}
