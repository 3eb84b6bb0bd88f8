// Package dto carries the request and response shapes of the HTTP surface.
package dto

import (
	"time"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

// CredentialsRequest login or registration payload.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccessUpdateRequest access-policy change payload.
type AccessUpdateRequest struct {
	AccessType string `json:"accessType"`
	Passkey    string `json:"passkey"`
}

// BulkDeleteRequest ids targeted by a bulk delete.
type BulkDeleteRequest struct {
	FileIDs []string `json:"fileIds"`
}

// FileView is the client-facing projection of a file record.
type FileView struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	AccessType  string    `json:"accessType"`
	PublicID    string    `json:"publicId,omitempty"`
	Folder      string    `json:"folder,omitempty"`
	App         string    `json:"app,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
	FileURL     string    `json:"fileUrl"`
}

// NewFileView project a record for client responses. The storage key and
// passkey never leave the server.
func NewFileView(file *model.FileRecord, fileURL string) *FileView {
	return &FileView{
		ID:          file.GetID(),
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		AccessType:  string(file.AccessType),
		PublicID:    file.PublicID,
		Folder:      file.FolderName,
		App:         file.AppName,
		UploadedAt:  file.UploadedAt,
		FileURL:     fileURL,
	}
}

// UserView is the client-facing projection of a user.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserView project a user for client responses.
func NewUserView(user *model.User) *UserView {
	return &UserView{
		ID:        user.GetID(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
