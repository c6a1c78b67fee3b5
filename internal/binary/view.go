// Package binary provides zero-copy byte views and big-endian decoding for FITS parsing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a read or slice falls outside the view.
var ErrOutOfRange = errors.New("range outside view")

// Order is the byte order of every multi-byte FITS value.
var Order = binary.BigEndian

// View is a read-only window over a shared byte buffer. Sub-views share the
// underlying array; nothing is copied.
type View struct {
	buf  []byte
	base int64 // offset of buf[0] within the root buffer
}

// NewView wraps b. The caller must not modify b while views are in use.
func NewView(b []byte) View {
	return View{buf: b}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.buf)
}

// Base returns the offset of the first byte of v within the root buffer.
func (v View) Base() int64 {
	return v.base
}

// Bytes returns the underlying bytes.
func (v View) Bytes() []byte {
	return v.buf
}

// Empty reports whether the view has no bytes.
func (v View) Empty() bool {
	return len(v.buf) == 0
}

// Slice returns the sub-view [start, end).
func (v View) Slice(start, end int) (View, error) {
	if start < 0 || end < start || end > len(v.buf) {
		return View{}, fmt.Errorf("%w: [%d, %d) of %d bytes at offset %d",
			ErrOutOfRange, start, end, len(v.buf), v.base)
	}
	return View{buf: v.buf[start:end:end], base: v.base + int64(start)}, nil
}

// From returns the sub-view starting at offset and running to the end.
// An offset equal to Len yields an empty view.
func (v View) From(offset int) (View, error) {
	return v.Slice(offset, len(v.buf))
}

// Block returns the n-th fixed-size block, 0-indexed.
func (v View) Block(n, size int) (View, error) {
	return v.Slice(n*size, (n+1)*size)
}

// Uint8 reads the byte at off.
func (v View) Uint8(off int) (uint8, error) {
	if off < 0 || off >= len(v.buf) {
		return 0, fmt.Errorf("%w: byte %d of %d", ErrOutOfRange, off, len(v.buf))
	}
	return v.buf[off], nil
}

// Int16 reads a big-endian two's-complement 16-bit integer at off.
func (v View) Int16(off int) (int16, error) {
	b, err := v.window(off, 2)
	if err != nil {
		return 0, err
	}
	return int16(Order.Uint16(b)), nil
}

// Int32 reads a big-endian two's-complement 32-bit integer at off.
func (v View) Int32(off int) (int32, error) {
	b, err := v.window(off, 4)
	if err != nil {
		return 0, err
	}
	return int32(Order.Uint32(b)), nil
}

// Int64 reads a big-endian two's-complement 64-bit integer at off.
func (v View) Int64(off int) (int64, error) {
	b, err := v.window(off, 8)
	if err != nil {
		return 0, err
	}
	return int64(Order.Uint64(b)), nil
}

// Float32 reads a big-endian IEEE-754 single at off.
func (v View) Float32(off int) (float32, error) {
	b, err := v.window(off, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(Order.Uint32(b)), nil
}

// Float64 reads a big-endian IEEE-754 double at off.
func (v View) Float64(off int) (float64, error) {
	b, err := v.window(off, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(Order.Uint64(b)), nil
}

func (v View) window(off, n int) ([]byte, error) {
	if off < 0 || off+n > len(v.buf) {
		return nil, fmt.Errorf("%w: %d bytes at %d of %d", ErrOutOfRange, n, off, len(v.buf))
	}
	return v.buf[off : off+n], nil
}

// BlocksFor returns the number of size-byte blocks needed to hold n bytes.
func BlocksFor(n int64, size int64) int64 {
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
