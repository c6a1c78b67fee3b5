package source

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a whole-file transport compression.
type Codec string

// Supported codecs.
const (
	CodecNone Codec = "none"
	CodecGzip Codec = "gzip"
	CodecZstd Codec = "zstd"
	CodecLZ4  Codec = "lz4"
)

// Decoder inflates a complete compressed payload.
type Decoder interface {
	Codec() Codec
	Decode(input []byte) ([]byte, error)
}

// Registry maps codecs to decoder constructors.
var Registry = map[Codec]func() Decoder{
	CodecGzip: func() Decoder { return gzipDecoder{} },
	CodecZstd: func() Decoder { return zstdDecoder{} },
	CodecLZ4:  func() Decoder { return lz4Decoder{} },
}

// magics maps leading bytes to codecs. FITS files start with "SIMPLE", so
// none of these can collide with an uncompressed file.
var magics = []struct {
	prefix []byte
	codec  Codec
}{
	{[]byte{0x1f, 0x8b}, CodecGzip},
	{[]byte{0x28, 0xb5, 0x2f, 0xfd}, CodecZstd},
	{[]byte{0x04, 0x22, 0x4d, 0x18}, CodecLZ4},
}

// Detect returns the codec whose magic prefixes data.
func Detect(data []byte) Codec {
	for _, m := range magics {
		if bytes.HasPrefix(data, m.prefix) {
			return m.codec
		}
	}
	return CodecNone
}

// Decompress inflates data until no known magic remains, so a gzip inside
// an lz4 frame is fully unwrapped.
func Decompress(data []byte) ([]byte, error) {
	for depth := 0; depth < len(Registry)+1; depth++ {
		codec := Detect(data)
		if codec == CodecNone {
			return data, nil
		}
		dec := Registry[codec]()
		out, err := dec.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s decode: %w", ErrIOFailure, codec, err)
		}
		data = out
	}
	return nil, fmt.Errorf("%w: compression nested too deeply", ErrIOFailure)
}

// Decompressing wraps a source and transparently inflates its output.
type Decompressing struct {
	next Source
}

// NewDecompressing wraps next.
func NewDecompressing(next Source) *Decompressing {
	return &Decompressing{next: next}
}

// Load loads through next and inflates.
func (d *Decompressing) Load(ctx context.Context, id string) ([]byte, error) {
	data, err := d.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return Decompress(data)
}

type gzipDecoder struct{}

func (gzipDecoder) Codec() Codec { return CodecGzip }

func (gzipDecoder) Decode(input []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

type zstdDecoder struct{}

func (zstdDecoder) Codec() Codec { return CodecZstd }

func (zstdDecoder) Decode(input []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	return dec.DecodeAll(input, nil)
}

type lz4Decoder struct{}

func (lz4Decoder) Codec() Codec { return CodecLZ4 }

func (lz4Decoder) Decode(input []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(input)))
}
