// Package service implements the file lifecycle and account operations of
// the storage app.
package service

import (
	"context"

	"github.com/Laisky/zap"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/dao"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/log"
)

var Instance *Type

func Initialize(ctx context.Context) {
	dao.Initialize(ctx)
	Instance = New(dao.Instance)

	if err := Instance.dao.SetupCols(ctx); err != nil {
		log.Logger.Panic("setup storage collections", zap.Error(err))
	}
}

// Type storage service
type Type struct {
	dao *dao.Storage
}

func New(dao *dao.Storage) *Type {
	return &Type{dao: dao}
}
