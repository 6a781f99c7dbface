package service

import (
	"context"
	"io"
)

// ImageStorage stores uploaded product images in a blob bucket.
type ImageStorage interface {
	// Upload writes the image under a generated object key and returns
	// its public URL.
	Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error)

	// Delete removes a previously uploaded image by its public URL.
	// Unknown URLs are ignored.
	Delete(ctx context.Context, publicURL string) error
}
