// Package storage stores product images in a blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/jonathanpoaquiza/market-jals/config"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers resolved from the configured URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for the image storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload writes the image under a generated key and returns its public
// URL. The original filename only contributes its extension.
func (s *blobStorage) Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	key := uuid.NewString() + strings.ToLower(path.Ext(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "open bucket writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "write image")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "close bucket writer")
	}

	s.logger.Debug("Image uploaded", "key", key)

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes a previously uploaded image by its public URL.
func (s *blobStorage) Delete(ctx context.Context, publicURL string) error {
	if !strings.HasPrefix(publicURL, s.publicBaseURL+"/") {
		// Externally hosted image, nothing to clean up.
		return nil
	}

	key := strings.TrimPrefix(publicURL, s.publicBaseURL+"/")
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "delete object %s", key)
	}

	return nil
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
