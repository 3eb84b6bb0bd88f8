package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

func TestValidateAccessRequest(t *testing.T) {
	require.NoError(t, validateAccessRequest(model.AccessPrivate, ""))
	require.NoError(t, validateAccessRequest(model.AccessPublic, ""))
	require.NoError(t, validateAccessRequest(model.AccessPasskey, "abcd"))

	err := validateAccessRequest(model.AccessType("bogus"), "")
	require.Error(t, err)
	require.True(t, model.IsValidation(err))

	// passkey below the minimum length
	err = validateAccessRequest(model.AccessPasskey, "abc")
	require.Error(t, err)
	require.True(t, model.IsValidation(err))

	err = validateAccessRequest(model.AccessPasskey, "")
	require.Error(t, err)
}

func TestAccessUpdateFields_IssuePublicID(t *testing.T) {
	current := model.NewFileRecord()
	current.AccessType = model.AccessPrivate

	set, unset, err := accessUpdateFields(current, AccessUpdate{AccessType: model.AccessPublic})
	require.NoError(t, err)
	require.Equal(t, model.AccessPublic, set["access_type"])
	require.NotEmpty(t, set["public_id"])
	require.Contains(t, unset, "passkey")
	require.NotContains(t, unset, "public_id")
}

func TestAccessUpdateFields_PreservePublicID(t *testing.T) {
	current := model.NewFileRecord()
	current.AccessType = model.AccessPublic
	current.PublicID = "abc"

	// public -> passkey keeps the issued id untouched
	set, _, err := accessUpdateFields(current, AccessUpdate{
		AccessType: model.AccessPasskey,
		Passkey:    "sesame",
	})
	require.NoError(t, err)
	require.NotContains(t, set, "public_id")
	require.Equal(t, "sesame", set["passkey"])

	// public -> public is a no-op on the id as well
	set, _, err = accessUpdateFields(current, AccessUpdate{AccessType: model.AccessPublic})
	require.NoError(t, err)
	require.NotContains(t, set, "public_id")
}

func TestAccessUpdateFields_GoPrivate(t *testing.T) {
	current := model.NewFileRecord()
	current.AccessType = model.AccessPasskey
	current.Passkey = "sesame"
	current.PublicID = "abc"

	// user surface: public id survives the transition
	set, unset, err := accessUpdateFields(current, AccessUpdate{AccessType: model.AccessPrivate})
	require.NoError(t, err)
	require.Equal(t, model.AccessPrivate, set["access_type"])
	require.Contains(t, unset, "passkey")
	require.NotContains(t, unset, "public_id")

	// admin and v1 surfaces withdraw it
	_, unset, err = accessUpdateFields(current, AccessUpdate{
		AccessType:           model.AccessPrivate,
		ClearPublicOnPrivate: true,
	})
	require.NoError(t, err)
	require.Contains(t, unset, "public_id")
}

func TestAccessUpdateFields_RejectedBeforeFields(t *testing.T) {
	current := model.NewFileRecord()

	set, unset, err := accessUpdateFields(current, AccessUpdate{
		AccessType: model.AccessPasskey,
		Passkey:    "ab",
	})
	require.Error(t, err)
	require.True(t, model.IsValidation(err))
	require.Nil(t, set)
	require.Nil(t, unset)
}
