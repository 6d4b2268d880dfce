package clients

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinIOClient(cfg *cfg.MinIOCfg) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return minioClient, nil
}

// EnsureBucket создаёт бакет, если он ещё не существует.
func EnsureBucket(ctx context.Context, client *minio.Client, cfg *cfg.MinIOCfg) error {
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}
