package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessType governs read authorization of a file record.
type AccessType string

const (
	// AccessPrivate readable by the owner (or an admin) only
	AccessPrivate AccessType = "private"
	// AccessPublic readable by anyone holding the link
	AccessPublic AccessType = "public"
	// AccessPasskey readable by anyone presenting the exact passkey
	AccessPasskey AccessType = "passkey"
)

// Valid reports whether t is a recognized access type.
func (t AccessType) Valid() bool {
	switch t {
	case AccessPrivate, AccessPublic, AccessPasskey:
		return true
	}
	return false
}

// MinPasskeyLen shortest accepted passkey.
const MinPasskeyLen = 4

// User is an account on the primary web surface.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Email login account, stored lowercase, unique
	Email string `bson:"email" json:"email"`
	// PasswordHash bcrypt hash, never serialized to clients
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// NewUser create a new user
func NewUser() *User {
	return &User{
		ID:        primitive.NewObjectID(),
		CreatedAt: gutils.Clock.GetUTCNow(),
	}
}

// GetID get id
func (u *User) GetID() string {
	return u.ID.Hex()
}

// FileRecord is the metadata of one uploaded file. The bytes live in object
// storage under StorageKey; the record must never outlive them.
type FileRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Filename display name, not a storage path
	Filename string `bson:"filename" json:"filename"`
	// StorageKey opaque handle into object storage, unique
	StorageKey  string `bson:"storage_key" json:"-"`
	ContentType string `bson:"content_type" json:"content_type"`
	Size        int64  `bson:"size" json:"size"`
	// OwnerID absent for uploads through the API-key surface
	OwnerID    *primitive.ObjectID `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
	AccessType AccessType          `bson:"access_type" json:"access_type"`
	// Passkey plaintext shared secret, present only when AccessType is passkey.
	// It gates reads of one file, it is not an account credential.
	Passkey string `bson:"passkey,omitempty" json:"-"`
	// PublicID unguessable external-facing identifier, issued at most once
	PublicID   string    `bson:"public_id,omitempty" json:"public_id,omitempty"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
	// FolderName / AppName free-form classification used by the API-key surface
	FolderName string `bson:"folder_name,omitempty" json:"folder,omitempty"`
	AppName    string `bson:"app_name,omitempty" json:"app,omitempty"`
}

// NewFileRecord create a new file record
func NewFileRecord() *FileRecord {
	return &FileRecord{
		ID:         primitive.NewObjectID(),
		AccessType: AccessPrivate,
		UploadedAt: gutils.Clock.GetUTCNow(),
	}
}

// GetID get id
func (f *FileRecord) GetID() string {
	return f.ID.Hex()
}

// OwnedBy reports whether the record belongs to the given user.
func (f *FileRecord) OwnedBy(userID primitive.ObjectID) bool {
	return f.OwnerID != nil && *f.OwnerID == userID
}

// PublicFacing reports whether the record is addressed by its public id.
func (f *FileRecord) PublicFacing() bool {
	return f.AccessType == AccessPublic || f.AccessType == AccessPasskey
}
