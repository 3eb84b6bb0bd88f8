package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	minioSDK "github.com/Sooraj-Rao/storage-cdn-s3/library/db/minio"
)

const (
	// MaxUserUploadBytes cap for the cookie-authenticated user surface
	MaxUserUploadBytes = 10 << 20
	// MaxAPIUploadBytes cap for the API-key surface
	MaxAPIUploadBytes = 1 << 20

	// DefaultFolder key prefix for uploads without an explicit folder
	DefaultFolder = "uploads"
)

// UploadRequest carries everything needed to store one file.
type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
	MaxBytes    int64

	AccessType model.AccessType
	Passkey    string
	// OwnerID nil for API-key uploads
	OwnerID *primitive.ObjectID
	// KeyPrefix top segment of the storage key; empty means DefaultFolder
	KeyPrefix string
	// Folder logical sub-folder, already sanitized by the caller. It extends
	// the storage key and is kept on the record.
	Folder string
	App    string
}

// Upload validates the request, writes the bytes to object storage and then
// creates the record. The object write comes first so a record never points
// at bytes that do not exist; an orphaned object after a failed record insert
// is an accepted, logged leak.
func (s *Type) Upload(ctx context.Context, req UploadRequest) (*model.FileRecord, error) {
	logger := gmw.GetLogger(ctx)

	if req.Filename == "" {
		return nil, model.NewValidationError("no file provided")
	}
	if req.MaxBytes > 0 && req.Size > req.MaxBytes {
		return nil, model.NewValidationError(
			fmt.Sprintf("file size exceeds %dMB limit", req.MaxBytes>>20))
	}
	if err := validateAccessRequest(req.AccessType, req.Passkey); err != nil {
		return nil, err
	}

	keyFolder := req.KeyPrefix
	if keyFolder == "" {
		keyFolder = DefaultFolder
	}
	if req.Folder != "" {
		keyFolder += "/" + req.Folder
	}

	storageKey, err := s.dao.PutObject(ctx,
		req.Reader, req.Size, keyFolder, req.Filename, req.ContentType)
	if err != nil {
		return nil, errors.Wrap(err, "write object")
	}

	file := model.NewFileRecord()
	file.Filename = req.Filename
	file.StorageKey = storageKey
	file.ContentType = req.ContentType
	file.Size = req.Size
	file.OwnerID = req.OwnerID
	file.AccessType = req.AccessType
	if req.AccessType == model.AccessPasskey {
		file.Passkey = req.Passkey
	}
	if file.PublicFacing() {
		file.PublicID = uuid.NewString()
	}
	file.FolderName = req.Folder
	file.AppName = req.App

	if err = s.dao.CreateFile(ctx, file); err != nil {
		// the object stays behind; favor surfacing the failure over
		// a delete that may also fail
		logger.Error("file record insert failed, object orphaned",
			zap.String("storage_key", storageKey), zap.Error(err))
		return nil, errors.Wrap(err, "create file record")
	}

	logger.Info("uploaded file",
		zap.String("file_id", file.GetID()),
		zap.String("storage_key", storageKey),
		zap.Int64("size", req.Size),
	)
	return file, nil
}

// Resolve locates a record by internal id or public id. The internal lookup
// runs only when token is syntactically an ObjectID; any miss falls through
// to the public-id lookup.
func (s *Type) Resolve(ctx context.Context, token string) (*model.FileRecord, error) {
	if oid, err := primitive.ObjectIDFromHex(token); err == nil {
		if file, err := s.dao.GetFileByID(ctx, oid); err == nil {
			return file, nil
		} else if !errors.Is(err, model.ErrNotFound) {
			return nil, errors.WithStack(err)
		}
	}

	file, err := s.dao.GetFileByPublicID(ctx, token)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return file, nil
}

// LoadFileByID load one record by its internal id.
func (s *Type) LoadFileByID(ctx context.Context, id primitive.ObjectID) (*model.FileRecord, error) {
	return s.dao.GetFileByID(ctx, id)
}

// Open streams the record's bytes from object storage.
func (s *Type) Open(ctx context.Context, file *model.FileRecord) (io.ReadCloser, *minioSDK.ObjectInfo, error) {
	return s.dao.GetObject(ctx, file.StorageKey)
}

// UpdateAccess applies an access-policy change to the record and returns the
// updated record.
func (s *Type) UpdateAccess(ctx context.Context, file *model.FileRecord, up AccessUpdate) (*model.FileRecord, error) {
	set, unset, err := accessUpdateFields(file, up)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	updated, err := s.dao.UpdateFileByID(ctx, file.ID, set, unset)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return updated, nil
}

// Delete removes the bytes and then the record. A failing object delete is
// logged and swallowed so the record never outlives a delete request.
func (s *Type) Delete(ctx context.Context, file *model.FileRecord) error {
	logger := gmw.GetLogger(ctx)

	if err := s.dao.DeleteObject(ctx, file.StorageKey); err != nil {
		logger.Error("delete object, record removed anyway",
			zap.String("storage_key", file.StorageKey), zap.Error(err))
	}

	if err := s.dao.DeleteFileByID(ctx, file.ID); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// BulkDeleteResult per-item accounting of a bulk delete.
type BulkDeleteResult struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// BulkDelete deletes the requester's files sequentially. One bad id never
// aborts the rest; every failure is accounted per item.
func (s *Type) BulkDelete(ctx context.Context, requester *model.Principal, fileIDs []string) (*BulkDeleteResult, error) {
	if len(fileIDs) == 0 {
		return nil, model.NewValidationError("no file IDs provided")
	}

	result := &BulkDeleteResult{Errors: []string{}}
	for _, raw := range fileIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("invalid file id %q", raw))
			continue
		}

		file, err := s.dao.GetFileByID(ctx, oid)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("file %q not found", raw))
			continue
		}

		if err = CanMutate(file, requester); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("access denied for %q", file.Filename))
			continue
		}

		if err = s.Delete(ctx, file); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %q", file.Filename))
			continue
		}
		result.Successful++
	}

	return result, nil
}

// ListAll every record, newest first. Admin surface only.
func (s *Type) ListAll(ctx context.Context) ([]*model.FileRecord, error) {
	files, _, err := s.dao.FindFiles(ctx, bson.M{}, 0, 0)
	return files, err
}

// ListCfg narrows the owner-less v1 listing.
type ListCfg struct {
	Folder string
	Search string
	App    string
	Limit  int64
	Offset int64
}

// ListOwnerless pages through the API-key namespace, optionally narrowed by
// folder prefix and app tag, then linearly filtered by the search term.
func (s *Type) ListOwnerless(ctx context.Context, cfg ListCfg) ([]*model.FileRecord, int64, error) {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	if cfg.Offset < 0 {
		cfg.Offset = 0
	}

	filter := bson.M{"owner_id": nil}
	if cfg.App != "" {
		filter["app_name"] = cfg.App
	}
	if cfg.Folder != "" {
		filter["storage_key"] = primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(DefaultFolder+"/"+strings.Trim(cfg.Folder, "/")) + "/",
		}
	}

	files, total, err := s.dao.FindFiles(ctx, filter, cfg.Limit, cfg.Offset)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	if cfg.Search != "" {
		files = SearchFiles(files, cfg.Search)
	}

	return files, total, nil
}

// FileURL builds the external retrieval URL for a record, preferring the
// public id so the internal id stays out of shared links.
func FileURL(file *model.FileRecord) string {
	base := strings.TrimSuffix(gconfig.Shared.GetString("settings.base_url"), "/")
	if file.PublicFacing() && file.PublicID != "" {
		return fmt.Sprintf("%s/api/files/%s", base, file.PublicID)
	}

	return fmt.Sprintf("%s/api/files/%s", base, file.GetID())
}
