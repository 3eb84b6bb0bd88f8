// Package minio is the object storage adapter. Callers address bytes by the
// opaque storage key returned from Put and never assume the key hint is used
// verbatim.
package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	minioLib "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Sooraj-Rao/storage-cdn-s3/library/log"
)

// Config dial information for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// ObjectInfo metadata of a stored object.
type ObjectInfo struct {
	ContentType string
	Size        int64
}

// Storage wraps one bucket of an S3-compatible object store.
type Storage struct {
	cli    *minioLib.Client
	bucket string
}

// New connects to the object store and verifies the bucket exists.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	log.Logger.Info("try to connect to object storage",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	cli, err := minioLib.New(cfg.Endpoint, &minioLib.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, errors.Wrap(err, "new minio client")
	}

	ok, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "check bucket %q", cfg.Bucket)
	}
	if !ok {
		return nil, errors.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return &Storage{cli: cli, bucket: cfg.Bucket}, nil
}

// BuildKey derives a fresh storage key under folder for the given filename.
// The random component keeps keys unique even for identical filenames.
func BuildKey(folder, filename string) string {
	return fmt.Sprintf("%s/%s-%s", strings.TrimSuffix(folder, "/"), uuid.NewString(), filename)
}

// Put writes size bytes from reader under key and returns the key.
func (s *Storage) Put(ctx context.Context, reader io.Reader, size int64, key, contentType string) (string, error) {
	if _, err := s.cli.PutObject(ctx, s.bucket, key, reader, size,
		minioLib.PutObjectOptions{ContentType: contentType},
	); err != nil {
		return "", errors.Wrapf(err, "put object %q", key)
	}

	return key, nil
}

// Get opens a stream over the object bytes. The caller closes the stream.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	obj, err := s.cli.GetObject(ctx, s.bucket, key, minioLib.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "get object %q", key)
	}

	// GetObject is lazy; Stat performs the request and surfaces NoSuchKey.
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, nil, errors.Wrapf(err, "stat object %q", key)
	}

	return obj, &ObjectInfo{
		ContentType: stat.ContentType,
		Size:        stat.Size,
	}, nil
}

// Delete removes the object. Deleting an absent key is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.cli.RemoveObject(ctx, s.bucket, key,
		minioLib.RemoveObjectOptions{},
	); err != nil {
		return errors.Wrapf(err, "remove object %q", key)
	}

	return nil
}

// IsNotFound reports whether err denotes a missing object.
func IsNotFound(err error) bool {
	return minioLib.ToErrorResponse(errors.Cause(err)).Code == "NoSuchKey"
}
