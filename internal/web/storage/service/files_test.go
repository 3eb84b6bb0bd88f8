package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

// upload validation runs before any store access, so a bare service type is
// enough to exercise the rejections.
func TestUploadRejections(t *testing.T) {
	ctx := context.Background()
	s := new(Type)

	t.Run("missing file", func(t *testing.T) {
		_, err := s.Upload(ctx, UploadRequest{
			AccessType: model.AccessPrivate,
			MaxBytes:   MaxUserUploadBytes,
		})
		require.Error(t, err)
		require.True(t, model.IsValidation(err))
	})

	t.Run("size over cap", func(t *testing.T) {
		_, err := s.Upload(ctx, UploadRequest{
			Filename:   "big.bin",
			Size:       MaxUserUploadBytes + 1,
			Reader:     strings.NewReader("x"),
			MaxBytes:   MaxUserUploadBytes,
			AccessType: model.AccessPrivate,
		})
		require.Error(t, err)
		require.True(t, model.IsValidation(err))
		require.Contains(t, err.Error(), "10MB")
	})

	t.Run("api cap is tighter", func(t *testing.T) {
		_, err := s.Upload(ctx, UploadRequest{
			Filename:   "big.bin",
			Size:       MaxAPIUploadBytes + 1,
			Reader:     strings.NewReader("x"),
			MaxBytes:   MaxAPIUploadBytes,
			AccessType: model.AccessPublic,
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "1MB")
	})

	t.Run("short passkey", func(t *testing.T) {
		_, err := s.Upload(ctx, UploadRequest{
			Filename:   "a.txt",
			Size:       1,
			Reader:     strings.NewReader("x"),
			MaxBytes:   MaxUserUploadBytes,
			AccessType: model.AccessPasskey,
			Passkey:    "abc",
		})
		require.Error(t, err)
		require.True(t, model.IsValidation(err))
	})

	t.Run("unknown access type", func(t *testing.T) {
		_, err := s.Upload(ctx, UploadRequest{
			Filename:   "a.txt",
			Size:       1,
			Reader:     strings.NewReader("x"),
			MaxBytes:   MaxUserUploadBytes,
			AccessType: model.AccessType("banana"),
		})
		require.Error(t, err)
		require.True(t, model.IsValidation(err))
	})
}
