package model

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	minioSDK "github.com/Sooraj-Rao/storage-cdn-s3/library/db/minio"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/db/mongo"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/log"
)

var (
	StorageDB   mongo.DB
	ObjectStore *minioSDK.Storage
)

func Initialize(ctx context.Context) {
	var err error
	if StorageDB, err = mongo.NewDB(ctx,
		mongo.DialInfo{
			Addr:   gconfig.Shared.GetString("settings.db.storage.addr"),
			DBName: gconfig.Shared.GetString("settings.db.storage.db"),
			User:   gconfig.Shared.GetString("settings.db.storage.user"),
			Pwd:    gconfig.Shared.GetString("settings.db.storage.pwd"),
		},
	); err != nil {
		log.Logger.Panic("connect to storage db", zap.Error(err))
	}

	if ObjectStore, err = minioSDK.New(ctx,
		minioSDK.Config{
			Endpoint:  gconfig.Shared.GetString("settings.s3.endpoint"),
			AccessKey: gconfig.Shared.GetString("settings.s3.access_key"),
			SecretKey: gconfig.Shared.GetString("settings.s3.secret_key"),
			Bucket:    gconfig.Shared.GetString("settings.s3.bucket"),
			Secure:    gconfig.Shared.GetBool("settings.s3.secure"),
		},
	); err != nil {
		log.Logger.Panic("connect to object storage", zap.Error(err))
	}
}
