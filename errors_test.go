package winlink

import (
	"errors"
	"syscall"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Microsoft/go-winlink/internal/winerr"
)

func TestPlatformErrorMessage(t *testing.T) {
	for _, tc := range []struct {
		err  *PlatformError
		want string
	}{
		{
			err:  &PlatformError{Op: "CreateFile", Path: `C:\x`, Err: winerr.ERROR_ACCESS_DENIED},
			want: `CreateFile C:\x: access is denied (0x5)`,
		},
		{
			err:  &PlatformError{Op: "FSCTL_SET_REPARSE_POINT", Err: syscall.Errno(0x1234)},
			want: "FSCTL_SET_REPARSE_POINT: win32 error 0x1234",
		},
		{
			err:  &PlatformError{Op: "DecodeReparsePoint", Err: winerr.ERROR_INVALID_REPARSE_DATA, Detail: "odd name length 3"},
			want: "DecodeReparsePoint: the data present in the reparse point buffer is invalid (0x1128): odd name length 3",
		},
		{
			err:  &PlatformError{Op: "UTF16PtrFromString", Path: "a", Err: errors.New("invalid argument")},
			want: "UTF16PtrFromString a: invalid argument",
		},
	} {
		require.Equal(t, tc.want, tc.err.Error())
	}
}

func TestErrorCode(t *testing.T) {
	perr := &PlatformError{Op: "CreateFile", Err: winerr.ERROR_PATH_NOT_FOUND}
	err := pkgerrors.Wrap(perr, "create junction")

	code, ok := ErrorCode(err)
	require.True(t, ok)
	require.Equal(t, winerr.ERROR_PATH_NOT_FOUND, code)
	require.ErrorIs(t, err, winerr.ERROR_PATH_NOT_FOUND)

	var got *PlatformError
	require.ErrorAs(t, err, &got)
	require.Equal(t, winerr.ERROR_PATH_NOT_FOUND, got.Code())

	_, ok = ErrorCode(pkgerrors.Wrap(ErrTargetNotFound, "x"))
	require.False(t, ok)
	require.Equal(t, syscall.Errno(0), (&PlatformError{Err: errors.New("x")}).Code())
}

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{ErrNotReparsePoint, ErrTargetNotFound, ErrAlreadyExists}
	for i, a := range all {
		for j, b := range all {
			require.Equal(t, i == j, errors.Is(a, b))
		}
	}
}
