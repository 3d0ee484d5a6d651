package winlink

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/Microsoft/go-winlink/internal/winerr"
)

// ReparseTag identifies the semantic type of a reparse point's data.
//
// https://learn.microsoft.com/en-us/windows/win32/fileio/reparse-point-tags
type ReparseTag uint32

const (
	// ReparseTagMountPoint marks junction points and volume mount points.
	ReparseTagMountPoint ReparseTag = 0xA0000003
	// ReparseTagSymlink marks symbolic links.
	ReparseTagSymlink ReparseTag = 0xA000000C

	reparseTagMicrosoft     = 0x80000000
	reparseTagNameSurrogate = 0x20000000
)

func (t ReparseTag) String() string {
	switch t {
	case ReparseTagMountPoint:
		return "MountPoint"
	case ReparseTagSymlink:
		return "SymbolicLink"
	}
	return fmt.Sprintf("ReparseTag(0x%08x)", uint32(t))
}

// IsMicrosoft reports whether the tag is owned by Microsoft.
func (t ReparseTag) IsMicrosoft() bool { return t&reparseTagMicrosoft != 0 }

// IsNameSurrogate reports whether the reparse point refers to another named
// entity in the file system, as junctions and symbolic links do.
func (t ReparseTag) IsNameSurrogate() bool { return t&reparseTagNameSurrogate != 0 }

// Layout of REPARSE_DATA_BUFFER:
//
//	offset size
//	0      4    ReparseTag
//	4      2    ReparseDataLength (bytes following Reserved)
//	6      2    Reserved
//	8      2    SubstituteNameOffset (relative to PathBuffer)
//	10     2    SubstituteNameLength
//	12     2    PrintNameOffset (relative to PathBuffer)
//	14     2    PrintNameLength
//	16     *    PathBuffer
//
// Symbolic links carry a 4 byte flags word between PrintNameLength and
// PathBuffer, so their names start 4 bytes later than mount point names.
const (
	reparseHeaderSize     = 8
	reparseNameHeaderSize = 8
	symlinkFlagsSize      = 4

	// ReparsePathBufferSize is the capacity of the path buffer that follows
	// the fixed headers.
	ReparsePathBufferSize = 0x3FF0

	// MaximumReparseDataBufferSize is the largest buffer the kernel hands out
	// for a reparse point query.
	MaximumReparseDataBufferSize = reparseHeaderSize + reparseNameHeaderSize + ReparsePathBufferSize

	symlinkFlagRelative = 0x1

	// ntPathPrefix tells NTFS to treat the rest of the path as a
	// non-interpreted path in the object manager namespace.
	ntPathPrefix = `\??\`
)

// reparseBuffer gives field access to a raw REPARSE_DATA_BUFFER. Accessors
// return an error rather than read past the end of the slice.
type reparseBuffer []byte

func (b reparseBuffer) tag() (ReparseTag, error) {
	if len(b) < reparseHeaderSize {
		return 0, errMalformed("reparse header truncated")
	}
	return ReparseTag(binary.LittleEndian.Uint32(b[0:4])), nil
}

// names returns the (offset, length) pairs of the substitute and print names.
func (b reparseBuffer) names() (subOff, subLen, printOff, printLen uint16, err error) {
	if len(b) < reparseHeaderSize+reparseNameHeaderSize {
		return 0, 0, 0, 0, errMalformed("name header truncated")
	}
	h := b[reparseHeaderSize:]
	return binary.LittleEndian.Uint16(h[0:2]),
		binary.LittleEndian.Uint16(h[2:4]),
		binary.LittleEndian.Uint16(h[4:6]),
		binary.LittleEndian.Uint16(h[6:8]),
		nil
}

// pathBuffer is the region the name offsets are relative to, capped at the
// fixed path buffer capacity.
func (b reparseBuffer) pathBuffer() []byte {
	p := b[reparseHeaderSize+reparseNameHeaderSize:]
	if len(p) > ReparsePathBufferSize {
		p = p[:ReparsePathBufferSize]
	}
	return p
}

func (b reparseBuffer) utf16At(off, n int) (string, error) {
	p := b.pathBuffer()
	if n%2 != 0 {
		return "", errMalformed(fmt.Sprintf("odd name length %d", n))
	}
	if off < 0 || off+n > len(p) {
		return "", errMalformed(fmt.Sprintf("name [%d:%d] outside %d byte path buffer", off, off+n, len(p)))
	}
	u := make([]uint16, n/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(p[off+2*i:])
	}
	return string(utf16.Decode(u)), nil
}

func errMalformed(msg string) error {
	return &PlatformError{Op: "DecodeReparsePoint", Err: winerr.ERROR_INVALID_REPARSE_DATA, Detail: msg}
}

// ReparsePoint describes a junction point or symbolic link.
type ReparsePoint struct {
	Tag    ReparseTag
	Target string
	// IsMountPoint is set for junction (mount point) reparse points.
	IsMountPoint bool
}

// UnsupportedReparsePointError is returned when trying to decode a reparse point
// that is neither a mount point nor a symbolic link.
type UnsupportedReparsePointError struct {
	Tag ReparseTag
}

func (e *UnsupportedReparsePointError) Error() string {
	return fmt.Sprintf("unsupported reparse point %x", uint32(e.Tag))
}

// Is lets errors.Is(err, ErrNotReparsePoint) match an unsupported tag.
func (e *UnsupportedReparsePointError) Is(target error) bool {
	return target == ErrNotReparsePoint
}

// DecodeReparseTag returns the tag of a raw REPARSE_DATA_BUFFER of any kind.
func DecodeReparseTag(b []byte) (ReparseTag, error) {
	return reparseBuffer(b).tag()
}

// DecodeReparsePoint decodes a REPARSE_DATA_BUFFER holding a junction point or
// a symbolic link. b is not modified.
//
// A tag other than [ReparseTagMountPoint] or [ReparseTagSymlink] yields an
// [*UnsupportedReparsePointError], which matches [ErrNotReparsePoint]. Names that
// fall outside the path buffer yield a [*PlatformError] carrying
// ERROR_INVALID_REPARSE_DATA.
func DecodeReparsePoint(b []byte) (*ReparsePoint, error) {
	rb := reparseBuffer(b)
	tag, err := rb.tag()
	if err != nil {
		return nil, err
	}
	if tag != ReparseTagMountPoint && tag != ReparseTagSymlink {
		return nil, &UnsupportedReparsePointError{Tag: tag}
	}

	subOff, subLen, printOff, printLen, err := rb.names()
	if err != nil {
		return nil, err
	}

	off, n := int(subOff), int(subLen)
	if tag == ReparseTagSymlink {
		off, n = int(printOff)+symlinkFlagsSize, int(printLen)
	}
	target, err := rb.utf16At(off, n)
	if err != nil {
		return nil, err
	}
	return &ReparsePoint{
		Tag:          tag,
		Target:       strings.TrimPrefix(target, ntPathPrefix),
		IsMountPoint: tag == ReparseTagMountPoint,
	}, nil
}

func utf16Bytes(s string) []byte {
	u := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(u))
	for i, c := range u {
		binary.LittleEndian.PutUint16(b[2*i:], c)
	}
	return b
}

// EncodeJunction builds the buffer FSCTL_SET_REPARSE_POINT needs to turn an
// empty directory into a junction pointing at target. target must already be
// an absolute path; only the \??\ prefix is added.
//
// The substitute name sits at offset 0 followed by a NUL, the print name is
// empty, and the result is exactly 8+ReparseDataLength bytes long.
func EncodeJunction(target string) ([]byte, error) {
	sub := utf16Bytes(ntPathPrefix + target)
	// two NUL terminators: one after the substitute name, one for the empty print name
	if len(sub)+4 > ReparsePathBufferSize {
		return nil, &PlatformError{
			Op:     "EncodeJunction",
			Path:   target,
			Err:    winerr.ERROR_INVALID_REPARSE_DATA,
			Detail: fmt.Sprintf("target needs %d bytes, path buffer holds %d", len(sub)+4, ReparsePathBufferSize),
		}
	}

	b := make([]byte, reparseHeaderSize+reparseNameHeaderSize+len(sub)+4)
	binary.LittleEndian.PutUint32(b[0:], uint32(ReparseTagMountPoint))
	binary.LittleEndian.PutUint16(b[4:], uint16(len(sub)+12))
	binary.LittleEndian.PutUint16(b[8:], 0)
	binary.LittleEndian.PutUint16(b[10:], uint16(len(sub)))
	binary.LittleEndian.PutUint16(b[12:], uint16(len(sub)+2))
	binary.LittleEndian.PutUint16(b[14:], 0)
	copy(b[16:], sub)
	return b, nil
}

// EncodeEmpty builds the header-only buffer FSCTL_DELETE_REPARSE_POINT uses to
// identify the mount point being removed.
func EncodeEmpty() []byte {
	b := make([]byte, reparseHeaderSize)
	binary.LittleEndian.PutUint32(b[0:], uint32(ReparseTagMountPoint))
	return b
}

// EncodeSymlink builds a symbolic link REPARSE_DATA_BUFFER. Absolute targets
// get an NT substitute name; relative ones are stored as is with the relative
// flag set.
func EncodeSymlink(target string, relative bool) ([]byte, error) {
	ntTarget := target
	if !relative {
		switch {
		case strings.HasPrefix(target, `\\?\`):
			ntTarget = ntPathPrefix + target[4:]
		case strings.HasPrefix(target, `\\`):
			ntTarget = ntPathPrefix + `UNC\` + target[2:]
		default:
			ntTarget = ntPathPrefix + target
		}
	}
	sub := utf16Bytes(ntTarget)
	printName := utf16Bytes(target)
	pathLen := len(sub) + 2 + len(printName) + 2
	if pathLen > ReparsePathBufferSize-symlinkFlagsSize {
		return nil, &PlatformError{
			Op:     "EncodeSymlink",
			Path:   target,
			Err:    winerr.ERROR_INVALID_REPARSE_DATA,
			Detail: fmt.Sprintf("target needs %d bytes, path buffer holds %d", pathLen, ReparsePathBufferSize-symlinkFlagsSize),
		}
	}

	var flags uint32
	if relative {
		flags |= symlinkFlagRelative
	}

	b := make([]byte, reparseHeaderSize+reparseNameHeaderSize+symlinkFlagsSize+pathLen)
	binary.LittleEndian.PutUint32(b[0:], uint32(ReparseTagSymlink))
	binary.LittleEndian.PutUint16(b[4:], uint16(reparseNameHeaderSize+symlinkFlagsSize+pathLen))
	binary.LittleEndian.PutUint16(b[8:], 0)
	binary.LittleEndian.PutUint16(b[10:], uint16(len(sub)))
	binary.LittleEndian.PutUint16(b[12:], uint16(len(sub)+2))
	binary.LittleEndian.PutUint16(b[14:], uint16(len(printName)))
	binary.LittleEndian.PutUint32(b[16:], flags)
	p := b[reparseHeaderSize+reparseNameHeaderSize+symlinkFlagsSize:]
	copy(p, sub)
	copy(p[len(sub)+2:], printName)
	return b, nil
}
