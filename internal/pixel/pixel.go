package pixel

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInvalidEncoding     = errors.New("invalid BITPIX")
	ErrUnsupportedEncoding = errors.New("unsupported pixel encoding")
	ErrShapeMismatch       = errors.New("sample count does not match shape")
)

// Type is a pixel encoding keyed by its BITPIX value.
type Type int

// The closed set of FITS pixel encodings.
const (
	Uint8   Type = 8
	Int16   Type = 16
	Int32   Type = 32
	Int64   Type = 64
	Float32 Type = -32
	Float64 Type = -64
)

// Domain is the numeric domain of a pixel encoding.
type Domain int

const (
	DomainUnsigned Domain = iota
	DomainSigned
	DomainFloat
)

func (d Domain) String() string {
	switch d {
	case DomainUnsigned:
		return "unsigned integer"
	case DomainSigned:
		return "signed integer"
	case DomainFloat:
		return "IEEE-754 float"
	}
	return fmt.Sprintf("Domain(%d)", int(d))
}

// ParseType maps a BITPIX value onto a Type.
func ParseType(bitpix int) (Type, error) {
	t := Type(bitpix)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidEncoding, bitpix)
	}
	return t, nil
}

// Valid reports whether t is one of the six FITS encodings.
func (t Type) Valid() bool {
	switch t {
	case Uint8, Int16, Int32, Int64, Float32, Float64:
		return true
	}
	return false
}

// Bits returns the bit width of one sample.
func (t Type) Bits() int {
	if t < 0 {
		return int(-t)
	}
	return int(t)
}

// Size returns the byte width of one sample.
func (t Type) Size() int {
	return t.Bits() / 8
}

// Domain returns the numeric domain of t.
func (t Type) Domain() Domain {
	switch {
	case t == Uint8:
		return DomainUnsigned
	case t < 0:
		return DomainFloat
	default:
		return DomainSigned
	}
}

// IsInteger reports whether t encodes integers.
func (t Type) IsInteger() bool {
	return t.Valid() && t.Domain() != DomainFloat
}

func (t Type) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}
