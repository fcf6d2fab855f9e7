package blob

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/config"
	"go.uber.org/fx"
)

// Module provides the attachment store via fx.
var Module = fx.Options(
	fx.Provide(newStore),
)

type storeParams struct {
	fx.In

	Config *config.Config
}

func newStore(p storeParams) (Store, error) {
	return Open(context.Background(), Config{
		Driver:             Driver(p.Config.BlobDriver),
		FSRoot:             p.Config.BlobFSRoot,
		GCSBucket:          p.Config.BlobGCSBucket,
		GCSCredentialsFile: p.Config.BlobGCSCredentialsFile,
		S3Bucket:           p.Config.BlobS3Bucket,
		S3Region:           p.Config.BlobS3Region,
		S3Endpoint:         p.Config.BlobS3Endpoint,
		S3AccessKeyID:      p.Config.BlobS3AccessKeyID,
		S3SecretAccessKey:  p.Config.BlobS3SecretAccessKey,
		S3PathStyle:        p.Config.BlobS3PathStyle,
	})
}
