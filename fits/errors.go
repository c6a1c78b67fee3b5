// Package fits provides a pure Go implementation for reading FITS files.
package fits

import (
	"errors"

	"github.com/robert-malhotra/go-fits/internal/header"
	"github.com/robert-malhotra/go-fits/internal/pixel"
	"github.com/robert-malhotra/go-fits/internal/record"
	"github.com/robert-malhotra/go-fits/internal/source"
	"github.com/robert-malhotra/go-fits/internal/stats"
)

// Errors raised while decoding. All are terminal for the operation that
// returned them; match with errors.Is.
var (
	ErrMalformedRecord      = record.ErrMalformed
	ErrMissingTerminator    = header.ErrMissingTerminator
	ErrInvalidPixelEncoding = pixel.ErrInvalidEncoding
	ErrUnsupportedEncoding  = pixel.ErrUnsupportedEncoding
	ErrShapeMismatch        = pixel.ErrShapeMismatch
	ErrEmptyInput           = stats.ErrEmptyInput
	ErrIOFailure            = source.ErrIOFailure

	ErrMissingKeyword   = errors.New("missing keyword")
	ErrInvalidAxisCount = errors.New("invalid NAXIS")
	ErrInvalidAxisIndex = errors.New("invalid axis index")
	ErrIndexOutOfRange  = errors.New("unit index out of range")
	ErrTruncatedData    = errors.New("data extends past end of file")
	ErrInvalidValue     = errors.New("invalid keyword value")
)

// MaxAxes is the largest NAXIS the format allows.
const MaxAxes = 999

// BlockSize is the size of every header and data block.
const BlockSize = header.BlockSize
