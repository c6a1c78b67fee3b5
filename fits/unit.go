package fits

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-fits/internal/binary"
	"github.com/robert-malhotra/go-fits/internal/header"
	"github.com/robert-malhotra/go-fits/internal/pixel"
)

// PixelType is a BITPIX encoding.
type PixelType = pixel.Type

// The six BITPIX encodings.
const (
	Uint8   = pixel.Uint8
	Int16   = pixel.Int16
	Int32   = pixel.Int32
	Int64   = pixel.Int64
	Float32 = pixel.Float32
	Float64 = pixel.Float64
)

// Array is an N-dimensional decoded data array.
type Array = pixel.Array

// Unit is one Header/Data Unit. It is immutable once parsed.
type Unit struct {
	index  int
	offset int64
	view   binary.View // from the unit start to the end of the file
	header *header.Header

	dataSize int64
}

// newUnit scans the header at the start of v and sizes the data that
// follows it.
func newUnit(v binary.View, index int) (*Unit, error) {
	h, err := header.Scan(v)
	if err != nil {
		return nil, fmt.Errorf("unit %d: %w", index, err)
	}
	u := &Unit{
		index:  index,
		offset: v.Base(),
		view:   v,
		header: h,
	}
	if u.dataSize, err = u.computeDataSize(); err != nil {
		return nil, err
	}
	return u, nil
}

// computeDataSize returns |BITPIX|/8 * GCOUNT * (PCOUNT + NAXIS1*...*NAXISn).
// PCOUNT defaults to 0 and GCOUNT to 1, so plain images reduce to
// |BITPIX|/8 times the axis product.
func (u *Unit) computeDataSize() (int64, error) {
	n, err := u.AxisCount()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	t, err := u.PixelEncoding()
	if err != nil {
		return 0, err
	}

	// The padded extent must still be addressable from the file start.
	limit := math.MaxInt64 - BlockSize - u.offset - int64(u.HeaderBlockCount())*BlockSize

	product := int64(1)
	for i := 1; i <= n; i++ {
		l, err := u.AxisLength(i)
		if err != nil {
			return 0, err
		}
		if product, err = u.boundedMul(product, int64(l), limit, fmt.Sprintf("NAXIS%d", i)); err != nil {
			return 0, err
		}
	}

	pcount, err := u.optionalInt("PCOUNT", 0)
	if err != nil {
		return 0, err
	}
	gcount, err := u.optionalInt("GCOUNT", 1)
	if err != nil {
		return 0, err
	}
	if pcount > limit-product {
		return 0, u.sizeOverflow("PCOUNT")
	}
	size, err := u.boundedMul(gcount, pcount+product, limit, "GCOUNT")
	if err != nil {
		return 0, err
	}
	return u.boundedMul(size, int64(t.Size()), limit, "BITPIX")
}

// boundedMul returns a*b for non-negative operands, or an error naming
// keyword when the product exceeds limit.
func (u *Unit) boundedMul(a, b, limit int64, keyword string) (int64, error) {
	if a != 0 && b > limit/a {
		return 0, u.sizeOverflow(keyword)
	}
	return a * b, nil
}

func (u *Unit) sizeOverflow(keyword string) error {
	return fmt.Errorf("%w: data size of unit %d at offset %d overflows at %s",
		ErrInvalidValue, u.index, u.offset, keyword)
}

func (u *Unit) optionalInt(keyword string, def int64) (int64, error) {
	if !u.header.Has(keyword) {
		return def, nil
	}
	v, err := u.Int(keyword)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s = %d at offset %d", ErrInvalidValue, keyword, v, u.offset)
	}
	return v, nil
}

// Index returns the position of the unit in its file; 0 is the primary HDU.
func (u *Unit) Index() int {
	return u.index
}

// Offset returns the byte offset of the unit within the file.
func (u *Unit) Offset() int64 {
	return u.offset
}

// HeaderBlockCount returns the number of 2880-byte header blocks.
func (u *Unit) HeaderBlockCount() int {
	return u.header.BlockCount()
}

// DataSize returns the unpadded data size in bytes.
func (u *Unit) DataSize() int64 {
	return u.dataSize
}

// DataBlockCount returns the number of 2880-byte data blocks.
func (u *Unit) DataBlockCount() int {
	return int(binary.BlocksFor(u.dataSize, BlockSize))
}

// DataByteRange returns the padded data extent relative to the unit start.
// It is empty when NAXIS is 0.
func (u *Unit) DataByteRange() (start, end int64) {
	start = int64(u.HeaderBlockCount()) * BlockSize
	end = start + int64(u.DataBlockCount())*BlockSize
	return start, end
}

// NextUnitOffset returns the offset of the following unit relative to this
// unit's start.
func (u *Unit) NextUnitOffset() int64 {
	return int64(u.HeaderBlockCount()+u.DataBlockCount()) * BlockSize
}

// successor parses the unit that follows u, or returns nil when no bytes
// remain after u's extent.
func (u *Unit) successor() (*Unit, error) {
	next := u.NextUnitOffset()
	if next >= int64(u.view.Len()) {
		return nil, nil
	}
	v, err := u.view.From(int(next))
	if err != nil {
		return nil, err
	}
	return newUnit(v, u.index+1)
}

// Data returns the unpadded data payload. The slice aliases the file buffer
// and must not be modified.
func (u *Unit) Data() ([]byte, error) {
	start, _ := u.DataByteRange()
	if u.dataSize == 0 {
		return []byte{}, nil
	}
	v, err := u.view.Slice(int(start), int(start+u.dataSize))
	if err != nil {
		return nil, fmt.Errorf("%w: unit %d needs %d data bytes at offset %d, file has %d",
			ErrTruncatedData, u.index, u.dataSize, u.offset+start, u.offset+int64(u.view.Len()))
	}
	return v.Bytes(), nil
}

// Keywords returns the valued and commentary keywords in order of first
// appearance.
func (u *Unit) Keywords() []string {
	return u.header.Keywords()
}

// Value returns the raw value string of keyword.
func (u *Unit) Value(keyword string) (string, bool) {
	return u.header.Value(keyword)
}

// Comment returns the inline comment attached to keyword.
func (u *Unit) Comment(keyword string) string {
	return u.header.Comment(keyword)
}

// Commentary returns the COMMENT, HISTORY or CONTINUE fragments in file
// order.
func (u *Unit) Commentary(keyword string) []string {
	return u.header.Commentary(keyword)
}

// Records returns the raw 80-byte header records, filler included.
func (u *Unit) Records() []string {
	recs := u.header.Records()
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.String()
	}
	return out
}

// RequireHeaderValue returns the value of keyword or ErrMissingKeyword.
func (u *Unit) RequireHeaderValue(keyword string) (string, error) {
	v, ok := u.header.Value(keyword)
	if !ok {
		return "", fmt.Errorf("%w: %s in unit %d at offset %d", ErrMissingKeyword, keyword, u.index, u.offset)
	}
	return v, nil
}

// AxisCount parses NAXIS.
func (u *Unit) AxisCount() (int, error) {
	raw, err := u.RequireHeaderValue("NAXIS")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > MaxAxes {
		return 0, fmt.Errorf("%w: %q in unit %d at offset %d", ErrInvalidAxisCount, raw, u.index, u.offset)
	}
	return n, nil
}

// AxisLength parses NAXISi for 1 <= i <= NAXIS.
func (u *Unit) AxisLength(i int) (int, error) {
	n, err := u.AxisCount()
	if err != nil {
		return 0, err
	}
	if n <= 0 || i < 1 || i > n {
		return 0, fmt.Errorf("%w: NAXIS%d with NAXIS = %d in unit %d", ErrInvalidAxisIndex, i, n, u.index)
	}
	keyword := "NAXIS" + strconv.Itoa(i)
	raw, err := u.RequireHeaderValue(keyword)
	if err != nil {
		return 0, err
	}
	l, err := strconv.Atoi(raw)
	if err != nil || l < 0 {
		return 0, fmt.Errorf("%w: %s = %q in unit %d", ErrInvalidValue, keyword, raw, u.index)
	}
	return l, nil
}

// Axes returns NAXIS1..NAXISn.
func (u *Unit) Axes() ([]int, error) {
	n, err := u.AxisCount()
	if err != nil {
		return nil, err
	}
	axes := make([]int, n)
	for i := range axes {
		if axes[i], err = u.AxisLength(i + 1); err != nil {
			return nil, err
		}
	}
	return axes, nil
}

// PixelEncoding parses BITPIX.
func (u *Unit) PixelEncoding() (PixelType, error) {
	raw, err := u.RequireHeaderValue("BITPIX")
	if err != nil {
		return 0, err
	}
	bitpix, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q in unit %d", ErrInvalidPixelEncoding, raw, u.index)
	}
	t, err := pixel.ParseType(bitpix)
	if err != nil {
		return 0, fmt.Errorf("unit %d: %w", u.index, err)
	}
	return t, nil
}

// IsImageExtension reports whether XTENSION contains "image", ignoring case.
// This is a heuristic: it does not inspect the data, and a missing XTENSION
// (as on the primary HDU) is simply false.
func (u *Unit) IsImageExtension() bool {
	x, ok := u.header.Value("XTENSION")
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(x), "image")
}

// IsPrimary reports whether the unit starts with SIMPLE = T.
func (u *Unit) IsPrimary() bool {
	recs := u.header.Records()
	if len(recs) == 0 {
		return false
	}
	key, _ := recs[0].Keyword()
	return key == "SIMPLE" && recs[0].Value() == "T"
}

// Kind returns PRIMARY for the primary HDU, otherwise the upper-cased
// XTENSION name (IMAGE, TABLE, BINTABLE, ...), or UNKNOWN.
func (u *Unit) Kind() string {
	if u.IsPrimary() {
		return "PRIMARY"
	}
	x, err := u.Text("XTENSION")
	if err != nil || x == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(x)
}

// Samples decodes the data as a flat sequence with NAXIS1 varying fastest.
func (u *Unit) Samples() ([]float64, error) {
	t, data, err := u.encodedData()
	if err != nil {
		return nil, err
	}
	return pixel.DecodeFlat(data, t)
}

// Ints decodes integer data exactly.
func (u *Unit) Ints() ([]int64, error) {
	t, data, err := u.encodedData()
	if err != nil {
		return nil, err
	}
	return pixel.DecodeInts(data, t)
}

// PhysicalSamples decodes the data and applies BZERO + BSCALE * raw. Missing
// keywords default to BSCALE = 1 and BZERO = 0.
func (u *Unit) PhysicalSamples() ([]float64, error) {
	raw, err := u.Samples()
	if err != nil {
		return nil, err
	}
	bscale, err := u.optionalFloat("BSCALE", 1)
	if err != nil {
		return nil, err
	}
	bzero, err := u.optionalFloat("BZERO", 0)
	if err != nil {
		return nil, err
	}
	if bscale == 1 && bzero == 0 {
		return raw, nil
	}
	return pixel.Scale(raw, bscale, bzero), nil
}

// Decode2D decodes a two-axis image into NAXIS2 rows of NAXIS1 samples.
func (u *Unit) Decode2D() ([][]float64, error) {
	axes, err := u.Axes()
	if err != nil {
		return nil, err
	}
	if len(axes) != 2 {
		return nil, fmt.Errorf("%w: unit %d has %d axes, want 2", ErrShapeMismatch, u.index, len(axes))
	}
	t, data, err := u.encodedData()
	if err != nil {
		return nil, err
	}
	return pixel.Decode2D(data, t, axes[0], axes[1])
}

// DecodeND decodes the data as an array of the declared rank.
func (u *Unit) DecodeND() (*Array, error) {
	axes, err := u.Axes()
	if err != nil {
		return nil, err
	}
	samples, err := u.Samples()
	if err != nil {
		return nil, err
	}
	return pixel.Reshape(samples, axes)
}

// ReferencePixel returns CRPIXn for the given 1-based axis.
func (u *Unit) ReferencePixel(axis int) (float64, error) {
	n, err := u.AxisCount()
	if err != nil {
		return 0, err
	}
	if axis < 1 || axis > n {
		return 0, fmt.Errorf("%w: CRPIX%d with NAXIS = %d", ErrInvalidAxisIndex, axis, n)
	}
	return u.Float("CRPIX" + strconv.Itoa(axis))
}

func (u *Unit) encodedData() (PixelType, []byte, error) {
	t, err := u.PixelEncoding()
	if err != nil {
		return 0, nil, err
	}
	data, err := u.Data()
	if err != nil {
		return 0, nil, err
	}
	return t, data, nil
}

func (u *Unit) optionalFloat(keyword string, def float64) (float64, error) {
	if !u.header.Has(keyword) {
		return def, nil
	}
	return u.Float(keyword)
}
