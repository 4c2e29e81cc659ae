// Package media stores uploaded files (listing photos, prescription scans)
// in a gocloud.dev blob bucket so the backing store can move from local disk
// to a cloud bucket by changing a URL.
package media

import (
	"context"
	"io"
	"strings"

	"lifelink/config"
	"lifelink/internal/domain/service"
	"lifelink/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Blob drivers registered by URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// Params defines the dependencies for the blob media storage.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// New opens the configured bucket and returns it as a MediaStorage.
func New(params Params) (service.MediaStorage, error) {
	if params.Config.Media == nil || params.Config.Media.BucketURL == "" {
		return nil, errors.New("media bucket URL must be configured")
	}

	bucket, err := blob.OpenBucket(context.Background(), params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(params.Config.Media.PublicBaseURL, "/"),
	}, nil
}

// Save writes the content under the given key and returns its public URL.
func (s *blobStorage) Save(ctx context.Context, key string, contentType string, content io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open blob writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write blob")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close blob writer")
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object stored under the given key.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrap(err, "failed to check blob existence")
	}
	if !exists {
		return nil
	}

	return errors.Wrap(s.bucket.Delete(ctx, key), "failed to delete blob")
}
