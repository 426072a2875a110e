package catalogsource

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/desi-diet/internal/domain/catalog"
)

// R2 reads the food list from an object in Cloudflare R2 (or any S3-compatible store).
type R2 struct {
	client *minio.Client
	bucket string
	object string
	logger *slog.Logger
}

// NewR2 constructs the object storage source.
func NewR2(endpoint, accessKey, secretKey, bucket, region, object string, logger *slog.Logger) (*R2, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}
	if object == "" {
		object = "foods.json"
	}
	return &R2{
		client: client,
		bucket: bucket,
		object: object,
		logger: logger.With("component", "catalogsource.r2"),
	}, nil
}

// Foods downloads and decodes the catalog object.
func (s *R2) Foods(ctx context.Context) ([]catalog.FoodItem, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get catalog object: %w", err)
	}
	defer obj.Close()
	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat catalog object %s/%s: %w", s.bucket, s.object, err)
	}
	items, err := decodeFoods(obj)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog object fetched", "bucket", s.bucket, "object", s.object, "etag", info.ETag, "foods", len(items))
	return items, nil
}

// Publish uploads items as the catalog object, creating the bucket if needed.
func (s *R2) Publish(ctx context.Context, items []catalog.FoodItem) error {
	if _, err := catalog.New(items); err != nil {
		return fmt.Errorf("refusing to publish invalid catalog: %w", err)
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	data, err := encodeFoods(items)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	info, err := s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      "application/json",
		DisableMultipart: true,
	})
	if err != nil {
		return fmt.Errorf("put catalog object: %w", err)
	}
	s.logger.Info("catalog object published", "bucket", s.bucket, "object", s.object, "etag", info.ETag, "foods", len(items))
	return nil
}

func (s *R2) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ catalog.Source = (*R2)(nil)
