package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func init() {
	Register("s3", openS3)
}

// openS3 fetches a workbook from s3://bucket/key and parses it in memory.
func openS3(ctx context.Context, u *url.URL, opts Options) (Reader, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 source must be s3://bucket/key, got %q", u.String())
	}

	endpoint := strings.TrimSpace(opts.S3.Endpoint)
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}
	region := strings.TrimSpace(opts.S3.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.S3.AccessKey, opts.S3.SecretKey, ""),
		Secure: opts.S3.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s3Error(u, err)
	}
	defer obj.Close()

	// GetObject is lazy; Stat surfaces a missing key before parsing.
	if _, err := obj.Stat(); err != nil {
		return nil, s3Error(u, err)
	}

	return openXLSXReader(obj)
}

func s3Error(u *url.URL, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%s: %w", u.String(), core.ErrSourceNotFound)
	}
	return fmt.Errorf("get %s: %w", u.String(), err)
}
