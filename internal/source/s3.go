package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used to fetch objects.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 loads s3://bucket/key objects.
type S3 struct {
	client S3API
}

// NewS3 builds an S3 source from the default AWS credential chain. An empty
// region defers to the environment; a non-empty endpoint switches to
// path-style addressing for S3-compatible stores.
func NewS3(ctx context.Context, region, endpoint string) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS config: %w", ErrIOFailure, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3WithClient(client), nil
}

// NewS3WithClient wraps an existing client.
func NewS3WithClient(client S3API) *S3 {
	return &S3{client: client}
}

// Load fetches the whole object.
func (s *S3) Load(ctx context.Context, id string) ([]byte, error) {
	bucket, key, err := splitBucketURI(id, "s3")
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: s3 get %s/%s: %w", ErrIOFailure, bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 read %s/%s: %w", ErrIOFailure, bucket, key, err)
	}
	return data, nil
}

// splitBucketURI splits scheme://bucket/key.
func splitBucketURI(id, scheme string) (string, string, error) {
	u, err := url.Parse(id)
	if err != nil {
		return "", "", fmt.Errorf("%w: parsing %q: %w", ErrIOFailure, id, err)
	}
	if u.Scheme != scheme {
		return "", "", fmt.Errorf("%w: %q is not a %s:// URI", ErrIOFailure, id, scheme)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrIOFailure, id)
	}
	return u.Host, key, nil
}
