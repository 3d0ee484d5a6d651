//go:build windows

// Package fileinfo reads the identity of a file system entry: its volume, its
// file index, and how many hard links point at it.
package fileinfo

import (
	"unsafe"

	"golang.org/x/sys/windows"

	winlink "github.com/Microsoft/go-winlink"
	"github.com/Microsoft/go-winlink/internal/fs"
)

// Info is the identity of a file or directory as reported by
// GetFileInformationByHandle.
type Info struct {
	// FileIndex is unique per file on a volume for as long as the file is open.
	FileIndex          uint64
	LinkCount          uint32
	VolumeSerialNumber uint32
	Attributes         uint32
	// ReparseTag is zero unless Attributes has FILE_ATTRIBUTE_REPARSE_POINT.
	ReparseTag winlink.ReparseTag
}

// fileAttributeTagInfo represents Windows's FILE_ATTRIBUTE_TAG_INFO type.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winbase/ns-winbase-file_attribute_tag_info
type fileAttributeTagInfo struct {
	attributes uint32
	tag        uint32
}

// Get returns the identity of path. A junction or symbolic link at path is
// described itself, not its target.
func Get(path string) (*Info, error) {
	h, err := winlink.OpenReparsePoint(path, fs.FILE_READ_ATTRIBUTES)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	var bhfi windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &bhfi); err != nil {
		return nil, &winlink.PlatformError{Op: "GetFileInformationByHandle", Path: path, Err: err}
	}
	var ti fileAttributeTagInfo
	if err := windows.GetFileInformationByHandleEx(h, windows.FileAttributeTagInfo, (*byte)(unsafe.Pointer(&ti)), uint32(unsafe.Sizeof(ti))); err != nil {
		return nil, &winlink.PlatformError{Op: "GetFileInformationByHandleEx", Path: path, Err: err}
	}

	return &Info{
		FileIndex:          uint64(bhfi.FileIndexHigh)<<32 | uint64(bhfi.FileIndexLow),
		LinkCount:          bhfi.NumberOfLinks,
		VolumeSerialNumber: bhfi.VolumeSerialNumber,
		Attributes:         ti.attributes,
		ReparseTag:         winlink.ReparseTag(ti.tag),
	}, nil
}

func (i *Info) IsDir() bool {
	return fs.FileAttribute(i.Attributes)&fs.FILE_ATTRIBUTE_DIRECTORY != 0
}

func (i *Info) IsReparsePoint() bool {
	return fs.FileAttribute(i.Attributes)&fs.FILE_ATTRIBUTE_REPARSE_POINT != 0
}

// SameFile reports whether a and b describe the same file, for example two
// hard links to it.
func SameFile(a, b *Info) bool {
	return a.VolumeSerialNumber == b.VolumeSerialNumber && a.FileIndex == b.FileIndex
}
