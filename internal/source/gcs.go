package source

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectOpener opens a GCS object for reading.
type ObjectOpener func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

// GCS loads gs://bucket/object objects.
type GCS struct {
	open ObjectOpener
}

// NewGCS builds a GCS source. An empty credentialsFile uses application
// default credentials.
func NewGCS(ctx context.Context, credentialsFile string) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: creating GCS client: %w", ErrIOFailure, err)
	}
	return NewGCSWithOpener(func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
		return client.Bucket(bucket).Object(object).NewReader(ctx)
	}), nil
}

// NewGCSWithOpener wraps a custom opener.
func NewGCSWithOpener(open ObjectOpener) *GCS {
	return &GCS{open: open}
}

// Load reads the whole object.
func (g *GCS) Load(ctx context.Context, id string) ([]byte, error) {
	bucket, object, err := splitBucketURI(id, "gs")
	if err != nil {
		return nil, err
	}

	r, err := g.open(ctx, bucket, object)
	if err != nil {
		return nil, fmt.Errorf("%w: gcs open %s/%s: %w", ErrIOFailure, bucket, object, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: gcs read %s/%s: %w", ErrIOFailure, bucket, object, err)
	}
	return data, nil
}
