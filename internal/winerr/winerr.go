// Package winerr holds the Win32 error codes shared by the link and reparse
// point wrappers, along with the messages pre-associated with them.
//
// The package does not import golang.org/x/sys/windows so the codec that uses
// it stays buildable and testable on every platform.
package winerr

import (
	"errors"
	"syscall"
)

//nolint:revive,stylecheck // SNAKE_CASE is not idiomatic in Go, but aligned with Win32 API.
const (
	ERROR_FILE_NOT_FOUND             syscall.Errno = 0x0002
	ERROR_PATH_NOT_FOUND             syscall.Errno = 0x0003
	ERROR_ACCESS_DENIED              syscall.Errno = 0x0005
	ERROR_INVALID_HANDLE             syscall.Errno = 0x0006
	ERROR_INVALID_PARAMETER          syscall.Errno = 0x0057
	ERROR_INSUFFICIENT_BUFFER        syscall.Errno = 0x007A
	ERROR_DIR_NOT_EMPTY              syscall.Errno = 0x0091
	ERROR_ALREADY_EXISTS             syscall.Errno = 0x00B7
	ERROR_MORE_DATA                  syscall.Errno = 0x00EA
	ERROR_PRIVILEGE_NOT_HELD         syscall.Errno = 0x0522
	ERROR_NOT_A_REPARSE_POINT        syscall.Errno = 0x1126
	ERROR_REPARSE_ATTRIBUTE_CONFLICT syscall.Errno = 0x1127
	ERROR_INVALID_REPARSE_DATA       syscall.Errno = 0x1128
	ERROR_REPARSE_TAG_INVALID        syscall.Errno = 0x1129
	ERROR_REPARSE_TAG_MISMATCH       syscall.Errno = 0x112A
)

var messages = map[syscall.Errno]string{
	ERROR_FILE_NOT_FOUND:             "the system cannot find the file specified",
	ERROR_PATH_NOT_FOUND:             "the system cannot find the path specified",
	ERROR_ACCESS_DENIED:              "access is denied",
	ERROR_INVALID_HANDLE:             "the handle is invalid",
	ERROR_INVALID_PARAMETER:          "the parameter is incorrect",
	ERROR_INSUFFICIENT_BUFFER:        "the data area passed to a system call is too small",
	ERROR_DIR_NOT_EMPTY:              "the directory is not empty",
	ERROR_ALREADY_EXISTS:             "cannot create a file when that file already exists",
	ERROR_MORE_DATA:                  "more data is available",
	ERROR_PRIVILEGE_NOT_HELD:         "a required privilege is not held by the client",
	ERROR_NOT_A_REPARSE_POINT:        "the file or directory is not a reparse point",
	ERROR_REPARSE_ATTRIBUTE_CONFLICT: "the reparse point attribute cannot be set because it conflicts with an existing attribute",
	ERROR_INVALID_REPARSE_DATA:       "the data present in the reparse point buffer is invalid",
	ERROR_REPARSE_TAG_INVALID:        "the tag present in the reparse point buffer is invalid",
	ERROR_REPARSE_TAG_MISMATCH:       "there is a mismatch between the tag specified in the request and the tag present in the reparse point",
}

// Message returns the message associated with code, if there is one.
func Message(code syscall.Errno) (string, bool) {
	m, ok := messages[code]
	return m, ok
}

// Code extracts the Win32 error code carried by err.
func Code(err error) (syscall.Errno, bool) {
	var code syscall.Errno
	if errors.As(err, &code) {
		return code, true
	}
	return 0, false
}

// IsBufferTooSmall reports whether err is one of the "try again with a larger
// buffer" codes.
func IsBufferTooSmall(err error) bool {
	code, ok := Code(err)
	return ok && (code == ERROR_INSUFFICIENT_BUFFER || code == ERROR_MORE_DATA)
}
