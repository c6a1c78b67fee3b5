// Package pixel decodes FITS data arrays.
//
// The BITPIX keyword selects one of six encodings. All multi-byte values are
// big-endian.
//
//	BITPIX | Bits | Domain
//	-------|------|------------------------------------
//	8      | 8    | unsigned integer
//	16     | 16   | signed two's-complement integer
//	32     | 32   | signed two's-complement integer
//	64     | 64   | signed two's-complement integer
//	-32    | 32   | IEEE-754 single precision
//	-64    | 64   | IEEE-754 double precision
//
// # Decoding
//
// [DecodeFlat] walks the bytes in strides of [Type.Size] and returns float64
// samples in file order, which is row-major with NAXIS1 varying fastest.
// [DecodeInts] returns exact int64 values for the integer encodings.
//
// # Shapes
//
// [Decode2D] and [Rows] reshape into (NAXIS2, NAXIS1). [Reshape] accepts any
// number of axes and returns an [Array] whose [Array.Nested] form has the
// slowest axis outermost.
//
// # Errors
//
//   - [ErrInvalidEncoding]: a BITPIX value outside the closed set
//   - [ErrUnsupportedEncoding]: a [Type] outside the closed set reached a decoder
//   - [ErrShapeMismatch]: sample count differs from the product of the axes
package pixel
