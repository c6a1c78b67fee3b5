package pixel

import "fmt"

// Array is an N-dimensional view over flat samples. Axes follow FITS order:
// Axes[0] is NAXIS1, the fastest-varying axis.
type Array struct {
	Axes []int
	Data []float64

	strides []int
}

// Reshape wraps samples as an array with the given FITS-ordered axes.
func Reshape(samples []float64, axes []int) (*Array, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrShapeMismatch)
	}

	strides := make([]int, len(axes))
	n := 1
	for i, a := range axes {
		if a < 0 {
			return nil, fmt.Errorf("%w: axis %d has negative length %d", ErrShapeMismatch, i+1, a)
		}
		strides[i] = n
		n *= a
	}
	if n != len(samples) {
		return nil, fmt.Errorf("%w: %d samples for axes %v", ErrShapeMismatch, len(samples), axes)
	}

	return &Array{
		Axes:    append([]int(nil), axes...),
		Data:    samples,
		strides: strides,
	}, nil
}

// Rank returns the number of axes.
func (a *Array) Rank() int {
	return len(a.Axes)
}

// Shape returns the dimensions slowest-first, the order used by Nested.
func (a *Array) Shape() []int {
	shape := make([]int, len(a.Axes))
	for i, n := range a.Axes {
		shape[len(a.Axes)-1-i] = n
	}
	return shape
}

// At returns the sample at FITS-ordered, 0-based coordinates.
func (a *Array) At(coords ...int) (float64, error) {
	if len(coords) != len(a.Axes) {
		return 0, fmt.Errorf("%w: %d coordinates for rank %d", ErrShapeMismatch, len(coords), len(a.Axes))
	}
	off := 0
	for i, c := range coords {
		if c < 0 || c >= a.Axes[i] {
			return 0, fmt.Errorf("coordinate %d out of range [0, %d) on axis %d", c, a.Axes[i], i+1)
		}
		off += c * a.strides[i]
	}
	return a.Data[off], nil
}

// Nested builds a nested structure of matching rank, slowest axis outermost.
// Rank 1 yields []float64, rank 2 yields [][]float64 and higher ranks nest
// []any around [][]float64.
func (a *Array) Nested() any {
	switch len(a.Axes) {
	case 1:
		return a.Data
	case 2:
		rows, _ := Rows(a.Data, a.Axes[0], a.Axes[1])
		return rows
	}
	return a.nest(len(a.Axes)-1, 0)
}

func (a *Array) nest(axis, off int) any {
	if axis == 1 {
		rows, _ := Rows(a.Data[off:off+a.strides[axis]*a.Axes[axis]], a.Axes[0], a.Axes[1])
		return rows
	}
	out := make([]any, a.Axes[axis])
	for i := range out {
		out[i] = a.nest(axis-1, off+i*a.strides[axis])
	}
	return out
}
