package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var payload = []byte("SIMPLE  =                    T")

func gzipped(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, b []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(b, nil)
}

func lz4ed(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fits")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	got, err := File{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	got, err = File{}.Load(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = File{}.Load(context.Background(), filepath.Join(dir, "missing.fits"))
	assert.ErrorIs(t, err, ErrIOFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := File{}.Load(ctx, "whatever")
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestMemorySource(t *testing.T) {
	m := NewMemory()
	m.Put("x", payload)

	got, err := m.Load(context.Background(), "mem://x")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = m.Load(context.Background(), "y")
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, CodecNone, Detect(payload))
	assert.Equal(t, CodecNone, Detect(nil))
	assert.Equal(t, CodecGzip, Detect(gzipped(t, payload)))
	assert.Equal(t, CodecZstd, Detect(zstded(t, payload)))
	assert.Equal(t, CodecLZ4, Detect(lz4ed(t, payload)))
}

func TestDecompress(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"plain", payload},
		{"gzip", gzipped(t, payload)},
		{"zstd", zstded(t, payload)},
		{"lz4", lz4ed(t, payload)},
		{"gzip in lz4", lz4ed(t, gzipped(t, payload))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompress(tt.data)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	_, err := Decompress([]byte{0x1f, 0x8b, 0x00, 0x01})
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestDecompressingSource(t *testing.T) {
	m := NewMemory()
	m.Put("z", zstded(t, payload))
	got, err := NewDecompressing(m).Load(context.Background(), "z")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

type fakeS3 struct {
	objects map[string][]byte
	lastKey string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = *in.Bucket + "/" + *in.Key
	data, ok := f.objects[f.lastKey]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Source(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"bucket/dir/image.fits": payload}}
	src := NewS3WithClient(fake)

	got, err := src.Load(context.Background(), "s3://bucket/dir/image.fits")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "bucket/dir/image.fits", fake.lastKey)

	_, err = src.Load(context.Background(), "s3://bucket/none.fits")
	assert.ErrorIs(t, err, ErrIOFailure)

	_, err = src.Load(context.Background(), "s3://bucket")
	assert.ErrorIs(t, err, ErrIOFailure)

	_, err = src.Load(context.Background(), "gs://bucket/key")
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestGCSSource(t *testing.T) {
	src := NewGCSWithOpener(func(_ context.Context, bucket, object string) (io.ReadCloser, error) {
		if bucket == "b" && object == "o.fits" {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
		return nil, errors.New("object doesn't exist")
	})

	got, err := src.Load(context.Background(), "gs://b/o.fits")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = src.Load(context.Background(), "gs://b/other.fits")
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "file", Scheme("/tmp/a.fits"))
	assert.Equal(t, "file", Scheme("a.fits"))
	assert.Equal(t, "file", Scheme(`C:\data\a.fits`))
	assert.Equal(t, "file", Scheme("file:///tmp/a.fits"))
	assert.Equal(t, "s3", Scheme("s3://b/k"))
	assert.Equal(t, "gs", Scheme("gs://b/k"))
}

type countingObserver struct {
	mu    sync.Mutex
	bytes map[string]int
}

func (c *countingObserver) BytesLoaded(scheme string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bytes == nil {
		c.bytes = make(map[string]int)
	}
	c.bytes[scheme] += n
}

func TestRouter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	obs := &countingObserver{}

	mem := NewMemory()
	mem.Put("plain", payload)
	mem.Put("packed", gzipped(t, payload))

	r := NewRouter(Config{},
		WithLogger(zap.New(core)),
		WithObserver(obs),
		WithSource("mem", mem),
	)

	got, err := r.Load(context.Background(), "mem://plain")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	got, err = r.Load(context.Background(), "mem://packed")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	assert.Equal(t, 2*len(payload), obs.bytes["mem"])
	assert.Equal(t, 2, logs.FilterMessage("loaded").Len())
	assert.Equal(t, 1, logs.FilterMessage("decompressed").Len())

	_, err = r.Load(context.Background(), "ftp://host/file.fits")
	assert.ErrorIs(t, err, ErrIOFailure)
	assert.Equal(t, 1, logs.FilterMessage("load failed").Len())
}

func TestRouterFileDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.fits.gz")
	require.NoError(t, os.WriteFile(path, gzipped(t, payload), 0o644))

	got, err := NewRouter(Config{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
