package winlink

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/Microsoft/go-winlink/internal/winerr"
)

var (
	// ErrNotReparsePoint is returned when a path holds no junction point or
	// symbolic link, either because it has no reparse data at all or because
	// its tag is of some other kind.
	ErrNotReparsePoint = errors.New("not a junction point or symbolic link")

	// ErrTargetNotFound is returned when a junction target is missing or is not
	// a directory.
	ErrTargetNotFound = errors.New("target path does not exist or is not a directory")

	// ErrAlreadyExists is returned when a directory is already present at the
	// junction path and overwriting was not requested.
	ErrAlreadyExists = errors.New("directory already exists and overwrite is false")
)

// PlatformError records a failed platform call along with the Win32 error
// code it returned.
type PlatformError struct {
	Op   string
	Path string
	Err  error
	// Detail is optional extra context appended to the message.
	Detail string
}

func (e *PlatformError) Error() string {
	s := e.Op
	if e.Path != "" {
		s += " " + e.Path
	}
	s += ": "
	if code, ok := winerr.Code(e.Err); ok {
		if m, ok := winerr.Message(code); ok {
			s += fmt.Sprintf("%s (0x%x)", m, uint32(code))
		} else {
			s += fmt.Sprintf("win32 error 0x%x", uint32(code))
		}
	} else if e.Err != nil {
		s += e.Err.Error()
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (e *PlatformError) Unwrap() error { return e.Err }

// Code returns the Win32 error code of the failed call, or 0 if the error did
// not come from one.
func (e *PlatformError) Code() syscall.Errno {
	code, _ := winerr.Code(e.Err)
	return code
}

// ErrorCode returns the Win32 error code carried anywhere in err's chain.
func ErrorCode(err error) (syscall.Errno, bool) {
	return winerr.Code(err)
}
