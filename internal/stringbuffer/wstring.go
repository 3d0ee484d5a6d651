package stringbuffer

import (
	"sync"
	"unicode/utf16"

	"github.com/Microsoft/go-winlink/internal/winerr"
)

// MinWStringCap is the smallest buffer handed out by the pool:
// MAX_PATH (260) + size of volume GUID prefix (49) + null terminator = 310.
const MinWStringCap = 310

// the pool stores *[]uint16 so Put does not allocate a slice header on the heap
var pathPool = sync.Pool{
	New: func() interface{} {
		b := make([]uint16, MinWStringCap)
		return &b
	},
}

func newBuffer() []uint16 { return *(pathPool.Get().(*[]uint16)) }

func freeBuffer(b []uint16) { pathPool.Put(&b) }

// WString is a UTF-16 buffer for passing strings to and from Win32 APIs.
// Sizes are uint32 to match the APIs.
//
// It is not safe for concurrent use.
type WString struct {
	b []uint16
}

// NewWString returns a pooled [WString] with a capacity of at least
// [MinWStringCap]. Its contents are not cleared.
//
// Release it with [WString.Free].
func NewWString() *WString {
	return &WString{b: newBuffer()}
}

func (b *WString) Free() {
	if b.empty() {
		return
	}
	freeBuffer(b.b)
	b.b = nil
}

// ResizeTo grows the buffer to at least c and returns the new capacity. The
// old buffer goes back to the pool.
func (b *WString) ResizeTo(c uint32) uint32 {
	if c <= b.Cap() {
		return b.Cap()
	}
	if c <= MinWStringCap {
		c = MinWStringCap
	}
	// at least double, as bytes.Buffer does
	if c <= 2*b.Cap() {
		c = 2 * b.Cap()
	}

	b2 := make([]uint16, c)
	if !b.empty() {
		copy(b2, b.b)
		freeBuffer(b.b)
	}
	b.b = b2
	return c
}

// Pointer returns the address of the first element, or nil after Free.
func (b *WString) Pointer() *uint16 {
	if b.empty() {
		return nil
	}
	return &b.b[0]
}

// String decodes the NUL-terminated contents of the buffer.
func (b *WString) String() string {
	if b.empty() {
		return ""
	}
	s := b.b
	for i, v := range s {
		if v == 0 {
			s = s[:i]
			break
		}
	}
	return string(utf16.Decode(s))
}

func (b *WString) Cap() uint32 {
	if b.empty() {
		return 0
	}
	return b.cap()
}

func (b *WString) cap() uint32 { return uint32(cap(b.b)) }
func (b *WString) empty() bool  { return b == nil || b.cap() == 0 }

// FillFunc calls a Win32 API that writes a string into buf, which holds size
// UTF-16 code units. It returns the API's count: the string length without
// its terminator on success, or the required size when buf is too small.
type FillFunc func(buf *uint16, size uint32) (n uint32, err error)

// Fill runs the two-phase "query, grow, query again" pattern common to the
// Win32 string APIs. call is invoked with the current buffer; if it reports a
// larger required size (or fails with ERROR_INSUFFICIENT_BUFFER), the buffer
// is grown to that size and call runs exactly once more. Any other failure,
// or a second short buffer, is returned as is.
func (b *WString) Fill(call FillFunc) (string, error) {
	n, err := call(b.Pointer(), b.Cap())
	switch {
	case err != nil && !winerr.IsBufferTooSmall(err):
		return "", err
	case err == nil && n < b.Cap():
		return string(utf16.Decode(b.b[:n])), nil
	}

	if n <= b.Cap() {
		n = 2 * b.Cap()
	}
	b.ResizeTo(n)
	n, err = call(b.Pointer(), b.Cap())
	if err != nil {
		return "", err
	}
	if n >= b.Cap() {
		return "", winerr.ERROR_INSUFFICIENT_BUFFER
	}
	return string(utf16.Decode(b.b[:n])), nil
}
