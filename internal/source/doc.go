// Package source loads whole FITS files into memory.
//
// The decoder never performs partial reads or seeks: it needs the complete
// file as one byte slice. This package supplies that slice from several
// places and hides transport compression.
//
// # Sources
//
//   - [File]: local paths and file:// URIs
//   - [S3]: s3://bucket/key through the AWS SDK default credential chain
//   - [GCS]: gs://bucket/object through Google Cloud Storage
//   - [Memory]: named in-memory blobs
//
// [Router] picks a source by URI scheme, building remote clients lazily.
//
// # Compression
//
// Whole-file gzip, zstd and lz4 frames are detected by magic number and
// inflated ([Decompress], [Decompressing]). This is transport compression of
// the file as a whole; FITS tile compression is not handled here.
//
// # Observability
//
// [Router.Load] opens an OpenTelemetry span per load, logs at debug level
// through zap and reports byte counts to an [Observer].
//
// # Errors
//
// Every failure wraps [ErrIOFailure].
package source
