package dao

import (
	"context"
	"io"

	"github.com/Laisky/errors/v2"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	minioSDK "github.com/Sooraj-Rao/storage-cdn-s3/library/db/minio"
)

// PutObject write file bytes under a fresh key derived from folder and
// filename. The returned key is the only handle to the bytes.
func (d *Storage) PutObject(ctx context.Context, reader io.Reader, size int64,
	folder, filename, contentType string) (string, error) {
	key := minioSDK.BuildKey(folder, filename)
	return d.store.Put(ctx, reader, size, key, contentType)
}

// GetObject open a stream over the stored bytes.
func (d *Storage) GetObject(ctx context.Context, storageKey string) (io.ReadCloser, *minioSDK.ObjectInfo, error) {
	reader, info, err := d.store.Get(ctx, storageKey)
	if err != nil {
		if minioSDK.IsNotFound(err) {
			return nil, nil, errors.Wrapf(model.ErrNotFound, "object %q", storageKey)
		}

		return nil, nil, errors.WithStack(err)
	}

	return reader, info, nil
}

// DeleteObject remove the stored bytes, idempotent.
func (d *Storage) DeleteObject(ctx context.Context, storageKey string) error {
	return d.store.Delete(ctx, storageKey)
}
