package binary

import (
	"math"
	"strings"
)

// Writer accumulates big-endian values into a growing buffer. It is used to
// build synthetic FITS streams; the reader never depends on it.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteInt16 appends a big-endian 16-bit integer.
func (w *Writer) WriteInt16(v int16) {
	w.buf = Order.AppendUint16(w.buf, uint16(v))
}

// WriteInt32 appends a big-endian 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.buf = Order.AppendUint32(w.buf, uint32(v))
}

// WriteInt64 appends a big-endian 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.buf = Order.AppendUint64(w.buf, uint64(v))
}

// WriteFloat32 appends a big-endian IEEE-754 single.
func (w *Writer) WriteFloat32(v float32) {
	w.buf = Order.AppendUint32(w.buf, math.Float32bits(v))
}

// WriteFloat64 appends a big-endian IEEE-754 double.
func (w *Writer) WriteFloat64(v float64) {
	w.buf = Order.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteCard appends s padded with spaces (or truncated) to width bytes.
func (w *Writer) WriteCard(s string, width int) {
	if len(s) > width {
		s = s[:width]
	}
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, strings.Repeat(" ", width-len(s))...)
}

// Pad appends fill bytes until the length is a multiple of size.
func (w *Writer) Pad(size int, fill byte) {
	for len(w.buf)%size != 0 {
		w.buf = append(w.buf, fill)
	}
}
