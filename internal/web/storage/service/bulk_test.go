package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

func TestBulkDeleteEmptyList(t *testing.T) {
	s := new(Type)
	_, err := s.BulkDelete(context.Background(), model.AdminPrincipal(), nil)
	require.True(t, model.IsValidation(err))
}

// malformed ids are accounted per item and never reach the store
func TestBulkDeleteInvalidIDs(t *testing.T) {
	s := new(Type)
	owner := primitive.NewObjectID()

	result, err := s.BulkDelete(context.Background(),
		model.UserPrincipal(owner), []string{"not-an-id", "zzz"})
	require.NoError(t, err)
	require.Equal(t, 0, result.Successful)
	require.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	require.Contains(t, result.Errors[0], "not-an-id")
}
