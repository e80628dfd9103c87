package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"fieldwatch/config"
)

type MinioStore struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// NewMinioStore connects, then creates the bucket when it does not exist yet.
func NewMinioStore(ctx context.Context, cfg config.MinioConfig, log *zap.Logger) (*MinioStore, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("created bucket", zap.String("bucket", cfg.Bucket))
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, log: log.Named("minio")}, nil
}

func (m *MinioStore) Ping(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s is missing", m.bucket)
	}
	return nil
}

func (m *MinioStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	m.log.Debug("uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (m *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()
	b, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// Open picks MinIO when an endpoint is configured and a DiskStore under
// blobDir otherwise.
func Open(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (ObjectStore, error) {
	if cfg.Minio.Endpoint == "" {
		log.Info("object store: local disk", zap.String("dir", cfg.BlobDir))
		return NewDiskStore(cfg.BlobDir)
	}
	log.Info("object store: minio", zap.String("endpoint", cfg.Minio.Endpoint), zap.String("bucket", cfg.Minio.Bucket))
	return NewMinioStore(ctx, cfg.Minio, log)
}
