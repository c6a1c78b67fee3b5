package pixel

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-fits/internal/binary"
)

// DecodeFlat decodes data as consecutive big-endian samples of type t.
// Trailing bytes that do not fill a whole sample are ignored.
func DecodeFlat(data []byte, t Type) ([]float64, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, int(t))
	}

	size := t.Size()
	n := len(data) / size
	out := make([]float64, n)
	order := binary.Order

	for i := 0; i < n; i++ {
		b := data[i*size : (i+1)*size]
		switch t {
		case Uint8:
			out[i] = float64(b[0])
		case Int16:
			out[i] = float64(int16(order.Uint16(b)))
		case Int32:
			out[i] = float64(int32(order.Uint32(b)))
		case Int64:
			out[i] = float64(int64(order.Uint64(b)))
		case Float32:
			out[i] = float64(math.Float32frombits(order.Uint32(b)))
		case Float64:
			out[i] = math.Float64frombits(order.Uint64(b))
		}
	}
	return out, nil
}

// DecodeInts decodes integer encodings exactly. Values of Int64 beyond 2^53
// survive here but not in DecodeFlat.
func DecodeInts(data []byte, t Type) ([]int64, error) {
	if !t.IsInteger() {
		return nil, fmt.Errorf("%w: %s is not an integer encoding", ErrUnsupportedEncoding, t)
	}

	size := t.Size()
	n := len(data) / size
	out := make([]int64, n)
	order := binary.Order

	for i := 0; i < n; i++ {
		b := data[i*size : (i+1)*size]
		switch t {
		case Uint8:
			out[i] = int64(b[0])
		case Int16:
			out[i] = int64(int16(order.Uint16(b)))
		case Int32:
			out[i] = int64(int32(order.Uint32(b)))
		case Int64:
			out[i] = int64(order.Uint64(b))
		}
	}
	return out, nil
}

// Decode2D decodes data and reshapes it into height rows of width samples.
func Decode2D(data []byte, t Type, width, height int) ([][]float64, error) {
	flat, err := DecodeFlat(data, t)
	if err != nil {
		return nil, err
	}
	return Rows(flat, width, height)
}

// Rows reshapes flat row-major samples into height rows of width columns.
// The rows share flat's backing array.
func Rows(flat []float64, width, height int) ([][]float64, error) {
	if width < 0 || height < 0 || len(flat) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrShapeMismatch, len(flat), width, height)
	}
	rows := make([][]float64, height)
	for y := range rows {
		rows[y] = flat[y*width : (y+1)*width : (y+1)*width]
	}
	return rows, nil
}

// Scale maps raw samples to physical values: bzero + bscale*raw.
func Scale(samples []float64, bscale, bzero float64) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = bzero + bscale*v
	}
	return out
}
