package service

import (
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

func ownedRecord(access model.AccessType, owner primitive.ObjectID) *model.FileRecord {
	f := model.NewFileRecord()
	f.AccessType = access
	f.OwnerID = &owner
	return f
}

func ownerlessRecord(access model.AccessType) *model.FileRecord {
	f := model.NewFileRecord()
	f.AccessType = access
	return f
}

func TestCanRead(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	t.Run("public readable by everyone", func(t *testing.T) {
		f := ownedRecord(model.AccessPublic, owner)
		require.NoError(t, CanRead(f, nil, ""))
		require.NoError(t, CanRead(f, model.UserPrincipal(stranger), ""))
		require.NoError(t, CanRead(f, model.AdminPrincipal(), ""))
		require.NoError(t, CanRead(f, model.APIKeyPrincipal(), ""))
	})

	t.Run("private owner only", func(t *testing.T) {
		f := ownedRecord(model.AccessPrivate, owner)
		require.NoError(t, CanRead(f, model.UserPrincipal(owner), ""))

		err := CanRead(f, model.UserPrincipal(stranger), "")
		require.ErrorIs(t, err, model.ErrForbidden)

		err = CanRead(f, nil, "")
		require.ErrorIs(t, err, model.ErrUnauthenticated)
	})

	t.Run("private admin may read", func(t *testing.T) {
		f := ownedRecord(model.AccessPrivate, owner)
		require.NoError(t, CanRead(f, model.AdminPrincipal(), ""))
	})

	t.Run("private api key limited to ownerless records", func(t *testing.T) {
		require.NoError(t, CanRead(ownerlessRecord(model.AccessPrivate), model.APIKeyPrincipal(), ""))

		err := CanRead(ownedRecord(model.AccessPrivate, owner), model.APIKeyPrincipal(), "")
		require.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("passkey requires exact match from everyone", func(t *testing.T) {
		f := ownedRecord(model.AccessPasskey, owner)
		f.Passkey = "sesame"

		require.NoError(t, CanRead(f, nil, "sesame"))
		require.NoError(t, CanRead(f, model.UserPrincipal(owner), "sesame"))

		// owner and admin do not bypass the passkey
		require.ErrorIs(t, CanRead(f, model.UserPrincipal(owner), ""), model.ErrInvalidPasskey)
		require.ErrorIs(t, CanRead(f, model.AdminPrincipal(), "wrong"), model.ErrInvalidPasskey)
		require.ErrorIs(t, CanRead(f, nil, "SESAME"), model.ErrInvalidPasskey)
	})

	t.Run("passkey record with empty stored passkey is sealed", func(t *testing.T) {
		f := ownedRecord(model.AccessPasskey, owner)
		require.ErrorIs(t, CanRead(f, nil, ""), model.ErrInvalidPasskey)
	})

	t.Run("unknown access type denied", func(t *testing.T) {
		f := ownedRecord(model.AccessType("mystery"), owner)
		require.ErrorIs(t, CanRead(f, model.AdminPrincipal(), ""), model.ErrForbidden)
	})
}

func TestCanMutate(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	f := ownedRecord(model.AccessPublic, owner)

	require.ErrorIs(t, CanMutate(f, nil), model.ErrUnauthenticated)
	require.NoError(t, CanMutate(f, model.UserPrincipal(owner)))
	require.ErrorIs(t, CanMutate(f, model.UserPrincipal(stranger)), model.ErrForbidden)
	require.NoError(t, CanMutate(f, model.AdminPrincipal()))

	// api key writes skip the owner check entirely
	require.NoError(t, CanMutate(f, model.APIKeyPrincipal()))
	require.NoError(t, CanMutate(ownerlessRecord(model.AccessPrivate), model.APIKeyPrincipal()))
}

func TestPolicyErrorsCarryStack(t *testing.T) {
	f := ownerlessRecord(model.AccessPrivate)
	err := CanRead(f, nil, "")
	require.Error(t, err)
	require.NotNil(t, errors.Cause(err))
}
