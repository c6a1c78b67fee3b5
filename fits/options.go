package fits

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/robert-malhotra/go-fits/internal/source"
)

// Source produces the complete bytes of a file. Failures should wrap
// ErrIOFailure.
type Source interface {
	Load(ctx context.Context, id string) ([]byte, error)
}

// Observer receives decoder accounting. If it also has a
// BytesLoaded(scheme string, n int) method, byte loads are reported too.
// Implementations must be safe for concurrent use.
type Observer interface {
	UnitsScanned(n int)
	LayerComputed(index int, d time.Duration, err error)
}

// Option configures how a file is opened.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	observer Observer
	source   Source
	remote   source.Config
}

func defaultOptions() *options {
	return &options{logger: zap.NewNop()}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used while loading bytes. Decoding itself never
// logs.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver reports scan and statistics activity to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithSource replaces scheme routing with src for OpenURI. Compressed
// payloads are still inflated.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithS3 sets the region and optional endpoint for s3:// URIs.
func WithS3(region, endpoint string) Option {
	return func(o *options) {
		o.remote.S3Region = region
		o.remote.S3Endpoint = endpoint
	}
}

// WithGCSCredentials sets a service-account file for gs:// URIs.
func WithGCSCredentials(path string) Option {
	return func(o *options) {
		o.remote.GCSCredentialsFile = path
	}
}

// router builds the byte source for OpenURI.
func (o *options) router() source.Source {
	if o.source != nil {
		return source.NewDecompressing(o.source)
	}
	ropts := []source.RouterOption{source.WithLogger(o.logger)}
	if bo, ok := o.observer.(source.Observer); ok {
		ropts = append(ropts, source.WithObserver(bo))
	}
	return source.NewRouter(o.remote, ropts...)
}
