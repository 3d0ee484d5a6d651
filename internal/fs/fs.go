//go:build windows

package fs

import (
	"golang.org/x/sys/windows"

	"github.com/Microsoft/go-winlink/internal/stringbuffer"
)

const NullHandle windows.Handle = 0

// AccessMask defines standard, specific, and generic rights.
//
// https://learn.microsoft.com/en-us/windows/win32/secauthz/access-mask
type AccessMask uint32

//nolint:revive // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	// For CreateFile: "query certain metadata such as file, directory, or device attributes without accessing that file or device"
	// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-createfilew#parameters
	FILE_ANY_ACCESS AccessMask = 0

	FILE_READ_ATTRIBUTES AccessMask = 0x0080

	GENERIC_READ  AccessMask = 0x8000_0000
	GENERIC_WRITE AccessMask = 0x4000_0000
)

type FileShareMode uint32

//nolint:revive // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	FILE_SHARE_READ        FileShareMode = 0x01
	FILE_SHARE_WRITE       FileShareMode = 0x02
	FILE_SHARE_DELETE      FileShareMode = 0x04
	FILE_SHARE_VALID_FLAGS FileShareMode = 0x07
)

type FileCreationDisposition uint32

//nolint:revive // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	CREATE_NEW    FileCreationDisposition = 0x01
	OPEN_EXISTING FileCreationDisposition = 0x03
)

// https://learn.microsoft.com/en-us/windows/win32/fileio/file-attribute-constants
type FileAttribute uint32

//nolint:revive // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	FILE_ATTRIBUTE_READONLY      FileAttribute = 0x0000_0001
	FILE_ATTRIBUTE_DIRECTORY     FileAttribute = 0x0000_0010
	FILE_ATTRIBUTE_NORMAL        FileAttribute = 0x0000_0080
	FILE_ATTRIBUTE_REPARSE_POINT FileAttribute = 0x0000_0400
)

// CreateFile takes flags and attributes together as one parameter.
type FileFlag = FileAttribute

//nolint:revive // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	// Required to open a directory handle.
	FILE_FLAG_BACKUP_SEMANTICS FileFlag = 0x0200_0000
	// Opens the reparse point itself rather than the entry it points to.
	FILE_FLAG_OPEN_REPARSE_POINT FileFlag = 0x0020_0000
)

// ReparsePointFlags are the flags needed to open a junction or symbolic link
// without following it, whether it is a file or a directory.
const ReparsePointFlags = FILE_FLAG_BACKUP_SEMANTICS | FILE_FLAG_OPEN_REPARSE_POINT

// CreateFile is [windows.CreateFile] with typed arguments.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-createfilew
func CreateFile(name string, access AccessMask, mode FileShareMode, sa *windows.SecurityAttributes, createmode FileCreationDisposition, attrs FileAttribute, templatefile windows.Handle) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return windows.InvalidHandle, err
	}
	return windows.CreateFile(p, uint32(access), uint32(mode), sa, uint32(createmode), uint32(attrs), templatefile)
}

// GetFinalPathNameByHandle flags
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getfinalpathnamebyhandlew#parameters
type GetFinalPathFlag uint32

//nolint:revive // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	GetFinalPathDefaultFlag GetFinalPathFlag = 0x0

	FILE_NAME_NORMALIZED GetFinalPathFlag = 0x0
	FILE_NAME_OPENED     GetFinalPathFlag = 0x8

	VOLUME_NAME_DOS  GetFinalPathFlag = 0x0
	VOLUME_NAME_NT   GetFinalPathFlag = 0x2
	VOLUME_NAME_NONE GetFinalPathFlag = 0x4
)

// GetFinalPathNameByHandle calls the Windows API GetFinalPathNameByHandle,
// growing the buffer once if the path does not fit.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getfinalpathnamebyhandlew
func GetFinalPathNameByHandle(h windows.Handle, flags GetFinalPathFlag) (string, error) {
	b := stringbuffer.NewWString()
	defer b.Free()
	return b.Fill(func(buf *uint16, size uint32) (uint32, error) {
		return windows.GetFinalPathNameByHandle(h, buf, size, uint32(flags))
	})
}

// GetFileAttributes returns the attributes of name without following a
// reparse point there.
//
// https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-getfileattributesw
func GetFileAttributes(name string) (FileAttribute, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	a, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0, err
	}
	return FileAttribute(a), nil
}

// IsDir reports whether name exists and is a directory. A junction or
// directory symbolic link counts as a directory even when its target is gone.
func IsDir(name string) (bool, error) {
	a, err := GetFileAttributes(name)
	if err != nil {
		return false, err
	}
	return a&FILE_ATTRIBUTE_DIRECTORY != 0, nil
}
