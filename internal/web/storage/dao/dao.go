// Package dao contains the data access objects of the storage app.
package dao

import (
	"context"

	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	minioSDK "github.com/Sooraj-Rao/storage-cdn-s3/library/db/minio"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/db/mongo"
)

const (
	colUsers = "users"
	colFiles = "files"
)

// Storage dao type
type Storage struct {
	db    mongo.DB
	store *minioSDK.Storage
}

var Instance *Storage

func Initialize(ctx context.Context) {
	model.Initialize(ctx)
	Instance = New(model.StorageDB, model.ObjectStore)
}

// New create new dao
func New(db mongo.DB, store *minioSDK.Storage) *Storage {
	return &Storage{
		db:    db,
		store: store,
	}
}

// GetUsersCol get users collection
func (d *Storage) GetUsersCol() *mongoLib.Collection {
	return d.db.GetCol(colUsers)
}

// GetFilesCol get file records collection
func (d *Storage) GetFilesCol() *mongoLib.Collection {
	return d.db.GetCol(colFiles)
}
