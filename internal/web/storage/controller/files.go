package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/dto"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/service"
)

func fileURL(file *model.FileRecord) string {
	return service.FileURL(file)
}

// requester resolves the read principal: a user session wins, an admin
// session counts next, anonymous otherwise.
func requester(ctx *gin.Context) *model.Principal {
	if p := currentUser(ctx); p != nil {
		return p
	}
	if isAdmin(ctx) {
		return model.AdminPrincipal()
	}
	return nil
}

// Upload stores one file for the authenticated user.
func (c *Type) Upload(ctx *gin.Context) {
	p, err := requireUser(ctx)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortErr(ctx, model.NewValidationError("no file provided"))
		return
	}

	accessType := model.AccessType(ctx.PostForm("accessType"))
	if accessType == "" {
		accessType = model.AccessPrivate
	}

	reader, err := fileHeader.Open()
	if err != nil {
		abortErr(ctx, err)
		return
	}
	defer reader.Close()

	file, err := c.svc.Upload(ctx.Request.Context(), service.UploadRequest{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      reader,
		MaxBytes:    service.MaxUserUploadBytes,
		AccessType:  accessType,
		Passkey:     ctx.PostForm("passkey"),
		OwnerID:     &p.UserID,
	})
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "File uploaded successfully",
		"fileId":     file.GetID(),
		"filename":   file.Filename,
		"accessType": file.AccessType,
		"publicId":   file.PublicID,
		"fileUrl":    fileURL(file),
	})
}

// Retrieve resolves the file by internal or public id, applies the access
// policy and streams the bytes.
func (c *Type) Retrieve(ctx *gin.Context) {
	file, err := c.svc.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		abortErr(ctx, err)
		return
	}

	if err = service.CanRead(file, requester(ctx), ctx.Query("passkey")); err != nil {
		abortErr(ctx, err)
		return
	}

	reader, info, err := c.svc.Open(ctx.Request.Context(), file)
	if err != nil {
		abortErr(ctx, err)
		return
	}
	defer reader.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = info.ContentType
	}

	disposition := "inline"
	if ctx.Query("download") == "true" {
		disposition = "attachment"
	}

	cacheControl := "private, no-cache"
	if file.AccessType == model.AccessPublic {
		cacheControl = "public, max-age=31536000, immutable"
	}

	ctx.DataFromReader(http.StatusOK, info.Size, contentType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", disposition, file.Filename),
		"Cache-Control":       cacheControl,
	})
}

// UpdateAccess changes a file's access policy. The owner mutates his own
// records; an admin session may mutate any record.
func (c *Type) UpdateAccess(ctx *gin.Context) {
	p := requester(ctx)

	file, err := c.svc.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		abortErr(ctx, err)
		return
	}

	if err = service.CanMutate(file, p); err != nil {
		abortErr(ctx, err)
		return
	}

	req := new(dto.AccessUpdateRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		abortErr(ctx, model.NewValidationError("invalid access update payload"))
		return
	}

	updated, err := c.svc.UpdateAccess(ctx.Request.Context(), file, service.AccessUpdate{
		AccessType: model.AccessType(req.AccessType),
		Passkey:    req.Passkey,
	})
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Access settings updated successfully",
		"accessType": updated.AccessType,
		"publicId":   updated.PublicID,
	})
}

// Delete removes one file, bytes first, then the record.
func (c *Type) Delete(ctx *gin.Context) {
	p := requester(ctx)

	file, err := c.svc.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		abortErr(ctx, err)
		return
	}

	if err = service.CanMutate(file, p); err != nil {
		abortErr(ctx, err)
		return
	}

	if err = c.svc.Delete(ctx.Request.Context(), file); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// BulkDelete removes a batch of the user's files, accounting each item.
func (c *Type) BulkDelete(ctx *gin.Context) {
	p, err := requireUser(ctx)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	req := new(dto.BulkDeleteRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		abortErr(ctx, model.NewValidationError("no file IDs provided"))
		return
	}

	result, err := c.svc.BulkDelete(ctx.Request.Context(), p, req.FileIDs)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Deleted %d files successfully", result.Successful),
		"results": result,
	})
}
