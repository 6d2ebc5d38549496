// Package storage implements the resume artifact store on top of gocloud.dev
// blob buckets, so local disk and S3-compatible backends share one code path.
package storage

import (
	"context"
	"log/slog"

	"talentgate/config"
	"talentgate/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selectable through storage.bucketUrl.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

// BucketParams defines the required parameters
type BucketParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewBucket opens the configured blob bucket and ties its lifetime to the
// application lifecycle.
func NewBucket(params BucketParams) (*blob.Bucket, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket url must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", params.Config.Storage.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing resume bucket")

			return errors.WithStack(bucket.Close())
		},
	})

	return bucket, nil
}
