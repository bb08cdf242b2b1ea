// Package limit caps how many bytes may be read from a source.
package limit

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned once a source yields more bytes than allowed
var ErrTooLarge = errors.New("content exceeds size limit")

// Reader wraps an io.Reader and fails when more than max bytes are read
type Reader struct {
	reader    io.Reader
	ctx       context.Context
	max       int64
	remaining int64
}

// NewReader wraps an io.Reader with a size limit.
// A limit of zero or less disables limiting.
func NewReader(ctx context.Context, reader io.Reader, max int64) io.Reader {
	if max <= 0 {
		return reader // No limiting
	}
	return &Reader{
		reader:    reader,
		ctx:       ctx,
		max:       max,
		remaining: max,
	}
}

// Read implements io.Reader. Exactly max bytes are allowed; the first
// byte past the limit turns into ErrTooLarge.
func (r *Reader) Read(p []byte) (int, error) {
	// Check context cancellation
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	if r.remaining < 0 {
		return 0, r.tooLarge()
	}

	// Read one byte past the limit to detect oversized sources
	if int64(len(p)) > r.remaining+1 {
		p = p[:r.remaining+1]
	}

	n, err := r.reader.Read(p)
	r.remaining -= int64(n)
	if r.remaining < 0 {
		return n + int(r.remaining), r.tooLarge()
	}

	return n, err
}

func (r *Reader) tooLarge() error {
	return fmt.Errorf("%w of %d bytes", ErrTooLarge, r.max)
}

// ReadCloser wraps an io.ReadCloser with a size limit
type ReadCloser struct {
	Reader
	closer io.Closer
}

// NewReadCloser wraps an io.ReadCloser with a size limit
func NewReadCloser(ctx context.Context, rc io.ReadCloser, max int64) io.ReadCloser {
	if max <= 0 {
		return rc // No limiting
	}
	return &ReadCloser{
		Reader: Reader{
			reader:    rc,
			ctx:       ctx,
			max:       max,
			remaining: max,
		},
		closer: rc,
	}
}

// Close implements io.Closer
func (rc *ReadCloser) Close() error {
	return rc.closer.Close()
}
