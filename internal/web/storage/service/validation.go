package service

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

// validateAccessRequest checks the access-type/passkey pair shared by upload
// and access-update. Rejected before any side effect.
func validateAccessRequest(accessType model.AccessType, passkey string) error {
	if !accessType.Valid() {
		return model.NewValidationError("invalid access type")
	}

	if accessType == model.AccessPasskey && len(passkey) < model.MinPasskeyLen {
		return model.NewValidationError("passkey must be at least 4 characters long")
	}

	return nil
}

// AccessUpdate is an explicit access-policy change request.
type AccessUpdate struct {
	AccessType model.AccessType
	Passkey    string
	// ClearPublicOnPrivate selects the admin/v1 behavior: going private also
	// withdraws the public id. The user surface keeps an issued public id.
	ClearPublicOnPrivate bool
}

// accessUpdateFields derives the store update for an access change against
// the current record. Pure; the caller owns persistence.
//
// Rules: a record entering a public-facing type is issued a public id only if
// it never had one, an existing public id is preserved and never rotated;
// leaving passkey access clears the stored passkey.
func accessUpdateFields(current *model.FileRecord, up AccessUpdate) (set, unset bson.M, err error) {
	if err = validateAccessRequest(up.AccessType, up.Passkey); err != nil {
		return nil, nil, err
	}

	set = bson.M{"access_type": up.AccessType}
	unset = bson.M{}

	switch up.AccessType {
	case model.AccessPasskey:
		set["passkey"] = up.Passkey
	default:
		unset["passkey"] = ""
	}

	switch up.AccessType {
	case model.AccessPublic, model.AccessPasskey:
		if current.PublicID == "" {
			set["public_id"] = uuid.NewString()
		}
	case model.AccessPrivate:
		if up.ClearPublicOnPrivate {
			unset["public_id"] = ""
		}
	}

	return set, unset, nil
}
