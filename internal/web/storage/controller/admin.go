package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/dto"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/service"
)

// requireAdmin aborts unless the request carries a live admin session.
func requireAdmin(ctx *gin.Context) bool {
	if !isAdmin(ctx) {
		abortErr(ctx, model.ErrUnauthenticated)
		return false
	}
	return true
}

// AdminListFiles returns every record, newest first. Admin operates without
// owner scoping by design.
func (c *Type) AdminListFiles(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	files, err := c.svc.ListAll(ctx.Request.Context())
	if err != nil {
		abortErr(ctx, err)
		return
	}

	views := make([]*dto.FileView, 0, len(files))
	for _, f := range files {
		views = append(views, dto.NewFileView(f, fileURL(f)))
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "files": views})
}

// AdminUpdateFile flips a record between private and public. On this surface
// going private also withdraws the public id.
func (c *Type) AdminUpdateFile(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	oid, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		abortErr(ctx, model.NewValidationError("invalid file id"))
		return
	}

	file, err := c.svc.LoadFileByID(ctx.Request.Context(), oid)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	req := new(dto.AccessUpdateRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		abortErr(ctx, model.NewValidationError("invalid access update payload"))
		return
	}
	accessType := model.AccessType(req.AccessType)
	if accessType != model.AccessPrivate && accessType != model.AccessPublic {
		abortErr(ctx, model.NewValidationError("access type must be 'private' or 'public'"))
		return
	}

	updated, err := c.svc.UpdateAccess(ctx.Request.Context(), file, service.AccessUpdate{
		AccessType:           accessType,
		ClearPublicOnPrivate: true,
	})
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"fileId":     updated.GetID(),
		"accessType": updated.AccessType,
		"fileUrl":    fileURL(updated),
	})
}

// AdminDeleteFile removes any record regardless of owner.
func (c *Type) AdminDeleteFile(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	oid, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		abortErr(ctx, model.NewValidationError("invalid file id"))
		return
	}

	file, err := c.svc.LoadFileByID(ctx.Request.Context(), oid)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	if err = c.svc.Delete(ctx.Request.Context(), file); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}
