package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOneToFive(t *testing.T) {
	s, err := Compute([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 3.0, s.Median)
	assert.InDelta(t, math.Sqrt2, s.StdDev, 1e-12)
}

func TestComputeEmpty(t *testing.T) {
	s, err := Compute(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.False(t, math.IsNaN(s.Mean))

	_, err = Compute([]float64{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestComputeUnsortedInputUntouched(t *testing.T) {
	in := []float64{9, -3, 4, 0}
	s, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, []float64{9, -3, 4, 0}, in)
	assert.Equal(t, -3.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 2.5, s.Mean)
}

func TestComputePopulationStdDev(t *testing.T) {
	s, err := Compute([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 5.0, s.Mean)
	assert.Equal(t, 2.0, s.StdDev)
}

func TestComputeSingle(t *testing.T) {
	s, err := Compute([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 1, Min: 7, Max: 7, Mean: 7, StdDev: 0, Median: 7}, s)
}

func TestMedianEvenTakesUpperMiddle(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 20.0, Median([]float64{10, 20}))

	s, err := Compute([]float64{40, 10, 30, 20})
	require.NoError(t, err)
	assert.Equal(t, 30.0, s.Median)
}
