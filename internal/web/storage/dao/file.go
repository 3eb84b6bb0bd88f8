package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

// SetupCols create the unique indexes the data model relies on.
// Uniqueness of email, storage key and public id is enforced here, not in
// application code.
func (d *Storage) SetupCols(ctx context.Context) error {
	if _, err := d.GetUsersCol().Indexes().CreateOne(ctx, mongoLib.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return errors.Wrap(err, "create index for email")
	}

	if _, err := d.GetFilesCol().Indexes().CreateOne(ctx, mongoLib.IndexModel{
		Keys:    bson.M{"storage_key": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return errors.Wrap(err, "create index for storage_key")
	}

	// sparse, most records never get a public id
	if _, err := d.GetFilesCol().Indexes().CreateOne(ctx, mongoLib.IndexModel{
		Keys:    bson.M{"public_id": 1},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}); err != nil {
		return errors.Wrap(err, "create index for public_id")
	}

	return nil
}

// CreateFile insert a new file record.
func (d *Storage) CreateFile(ctx context.Context, file *model.FileRecord) error {
	if _, err := d.GetFilesCol().InsertOne(ctx, file); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrapf(model.ErrConflict, "file %q", file.StorageKey)
		}

		return errors.Wrapf(err, "insert file %q", file.Filename)
	}

	return nil
}

// GetFileByID load one file record by its internal id.
func (d *Storage) GetFileByID(ctx context.Context, id primitive.ObjectID) (*model.FileRecord, error) {
	file := new(model.FileRecord)
	if err := d.GetFilesCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(file); err != nil {
		if errors.Is(err, mongoLib.ErrNoDocuments) {
			return nil, errors.Wrapf(model.ErrNotFound, "file %q", id.Hex())
		}

		return nil, errors.Wrapf(err, "find file %q", id.Hex())
	}

	return file, nil
}

// GetFileByPublicID load one file record by its external public id.
func (d *Storage) GetFileByPublicID(ctx context.Context, publicID string) (*model.FileRecord, error) {
	file := new(model.FileRecord)
	if err := d.GetFilesCol().
		FindOne(ctx, bson.M{"public_id": publicID}).
		Decode(file); err != nil {
		if errors.Is(err, mongoLib.ErrNoDocuments) {
			return nil, errors.Wrapf(model.ErrNotFound, "file %q", publicID)
		}

		return nil, errors.Wrapf(err, "find file %q", publicID)
	}

	return file, nil
}

// GetFilesByOwner list the owner's records, newest upload first.
func (d *Storage) GetFilesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*model.FileRecord, error) {
	cur, err := d.GetFilesCol().Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "find files of %q", ownerID.Hex())
	}
	defer cur.Close(ctx)

	files := []*model.FileRecord{}
	if err = cur.All(ctx, &files); err != nil {
		return nil, errors.Wrap(err, "load files")
	}

	return files, nil
}

// FindFiles page through records matching filter, newest upload first.
// It returns the page and the total match count.
func (d *Storage) FindFiles(ctx context.Context, filter bson.M, limit, offset int64) ([]*model.FileRecord, int64, error) {
	cur, err := d.GetFilesCol().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}),
		options.Find().SetSkip(offset),
		options.Find().SetLimit(limit),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "find files")
	}
	defer cur.Close(ctx)

	files := []*model.FileRecord{}
	if err = cur.All(ctx, &files); err != nil {
		return nil, 0, errors.Wrap(err, "load files")
	}

	total, err := d.GetFilesCol().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count files")
	}

	return files, total, nil
}

// UpdateFileByID apply set/unset field updates and return the updated record.
func (d *Storage) UpdateFileByID(ctx context.Context, id primitive.ObjectID,
	set bson.M, unset bson.M) (*model.FileRecord, error) {
	update := bson.M{}
	if len(set) != 0 {
		update["$set"] = set
	}
	if len(unset) != 0 {
		update["$unset"] = unset
	}

	file := new(model.FileRecord)
	if err := d.GetFilesCol().
		FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).
		Decode(file); err != nil {
		if errors.Is(err, mongoLib.ErrNoDocuments) {
			return nil, errors.Wrapf(model.ErrNotFound, "file %q", id.Hex())
		}
		if mongoLib.IsDuplicateKeyError(err) {
			return nil, errors.Wrapf(model.ErrConflict, "file %q", id.Hex())
		}

		return nil, errors.Wrapf(err, "update file %q", id.Hex())
	}

	return file, nil
}

// DeleteFileByID remove one record. Deleting an absent record is ErrNotFound.
func (d *Storage) DeleteFileByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := d.GetFilesCol().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "delete file %q", id.Hex())
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "file %q", id.Hex())
	}

	return nil
}
