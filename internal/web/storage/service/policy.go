package service

import (
	"github.com/Laisky/errors/v2"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

// The access policy engine. Pure decision functions with no side effects;
// every handler funnels its authorization question through here.

// CanRead decides whether requester may read the file's bytes.
//
// Rules per access type:
//   - public: always readable.
//   - passkey: readable only with the exact stored passkey. No principal,
//     owner or admin included, bypasses the passkey.
//   - private: readable by the owner and by an admin; anonymous requesters
//     are unauthenticated, everyone else is forbidden. An API-key client may
//     read owner-less records, which are the only ones in its namespace.
func CanRead(f *model.FileRecord, requester *model.Principal, suppliedPasskey string) error {
	switch f.AccessType {
	case model.AccessPublic:
		return nil

	case model.AccessPasskey:
		if f.Passkey == "" || suppliedPasskey != f.Passkey {
			return errors.WithStack(model.ErrInvalidPasskey)
		}
		return nil

	case model.AccessPrivate:
		if requester == nil {
			return errors.WithStack(model.ErrUnauthenticated)
		}
		switch requester.Kind {
		case model.PrincipalAdmin:
			return nil
		case model.PrincipalUser:
			if f.OwnedBy(requester.UserID) {
				return nil
			}
		case model.PrincipalAPIKey:
			if f.OwnerID == nil {
				return nil
			}
		}
		return errors.WithStack(model.ErrForbidden)

	default:
		return errors.Wrapf(model.ErrForbidden, "unknown access type %q", f.AccessType)
	}
}

// CanMutate decides whether requester may change or delete the file record.
// Reads of public files are free, writes never are: the owner may mutate his
// own records, an admin may mutate any record, and an API-key client mutates
// the owner-less namespace without owner checks.
func CanMutate(f *model.FileRecord, requester *model.Principal) error {
	if requester == nil {
		return errors.WithStack(model.ErrUnauthenticated)
	}

	switch requester.Kind {
	case model.PrincipalAdmin, model.PrincipalAPIKey:
		return nil
	case model.PrincipalUser:
		if f.OwnedBy(requester.UserID) {
			return nil
		}
	}

	return errors.WithStack(model.ErrForbidden)
}
