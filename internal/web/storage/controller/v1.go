package controller

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/dto"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/service"
)

// requireAPIKey aborts unless the request carries a configured API key.
func requireAPIKey(ctx *gin.Context) bool {
	if !validAPIKey(ctx) {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized,
			gin.H{"error": "Invalid or missing API key"})
		return false
	}
	return true
}

// V1Upload stores one file in the owner-less namespace, 1 MiB cap. The
// folder name is sanitized before it reaches the storage key.
func (c *Type) V1Upload(ctx *gin.Context) {
	if !requireAPIKey(ctx) {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortErr(ctx, model.NewValidationError("no file provided"))
		return
	}

	accessType := model.AccessType(ctx.PostForm("accessType"))
	if accessType == "" {
		accessType = model.AccessPublic
	}
	if accessType != model.AccessPrivate && accessType != model.AccessPublic {
		abortErr(ctx, model.NewValidationError("access type must be 'private' or 'public'"))
		return
	}

	folder := service.SanitizeFolder(ctx.PostForm("folder"))

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
		MaxBytes:    service.MaxAPIUploadBytes,
		AccessType:  accessType,
		Folder:      folder,
		App:         ctx.PostForm("app"),
	})
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"fileId":      file.GetID(),
		"fileUrl":     fileURL(file),
		"filename":    file.Filename,
		"size":        file.Size,
		"contentType": file.ContentType,
		"accessType":  file.AccessType,
		"folder":      folder,
	})
}

// V1ListFiles pages through the owner-less namespace with a derived folder
// tree alongside the flat file list.
func (c *Type) V1ListFiles(ctx *gin.Context) {
	if !requireAPIKey(ctx) {
		return
	}

	limit, _ := strconv.ParseInt(ctx.DefaultQuery("limit", "100"), 10, 64)
	offset, _ := strconv.ParseInt(ctx.DefaultQuery("offset", "0"), 10, 64)

	files, total, err := c.svc.ListOwnerless(ctx.Request.Context(), service.ListCfg{
		Folder: ctx.Query("folder"),
		Search: ctx.Query("search"),
		App:    ctx.Query("app"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		abortErr(ctx, err)
		return
	}

	folders, _ := service.FolderStructure(files)
	folderViews := make([]*service.Folder, 0, len(folders))
	for _, f := range folders {
		folderViews = append(folderViews, f)
	}

	views := make([]*dto.FileView, 0, len(files))
	for _, f := range files {
		views = append(views, dto.NewFileView(f, fileURL(f)))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   views,
		"folders": folderViews,
		"pagination": gin.H{
			"total":   total,
			"limit":   limit,
			"offset":  offset,
			"hasMore": offset+limit < total,
		},
	})
}

// V1UpdateFile flips a record between private and public; going private
// withdraws the public id on this surface.
func (c *Type) V1UpdateFile(ctx *gin.Context) {
	if !requireAPIKey(ctx) {
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
		"fileUrl":    fileURL(updated),
		"accessType": updated.AccessType,
	})
}

// V1DeleteFile removes one record from the owner-less namespace.
func (c *Type) V1DeleteFile(ctx *gin.Context) {
	if !requireAPIKey(ctx) {
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

// allowedOrigin reports whether origin may use the legacy upload endpoint.
// Requests without an Origin header are not CORS requests and pass.
func allowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	suffix := gconfig.Shared.GetString("settings.allowed_origin_suffix")
	if suffix == "" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	return strings.HasSuffix(host, "."+suffix) || host == suffix
}

func setLegacyCORSHeaders(ctx *gin.Context, origin string) {
	ctx.Header("Access-Control-Allow-Origin", origin)
	ctx.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// LegacyUploadPreflight answers the CORS preflight of the legacy endpoint.
func (c *Type) LegacyUploadPreflight(ctx *gin.Context) {
	origin := ctx.GetHeader("Origin")
	if !allowedOrigin(origin) {
		ctx.Header("Access-Control-Allow-Origin", "null")
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}

	setLegacyCORSHeaders(ctx, origin)
	ctx.Status(http.StatusNoContent)
}

// LegacyUpload is the single-purpose browser upload endpoint: API key plus
// an allow-listed request origin, 1 MiB cap, records are always public.
func (c *Type) LegacyUpload(ctx *gin.Context) {
	origin := ctx.GetHeader("Origin")
	if !allowedOrigin(origin) {
		ctx.Header("Access-Control-Allow-Origin", "null")
		ctx.AbortWithStatusJSON(http.StatusForbidden,
			gin.H{"error": "CORS not allowed from this origin"})
		return
	}
	if origin != "" {
		setLegacyCORSHeaders(ctx, origin)
	}

	if !requireAPIKey(ctx) {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortErr(ctx, model.NewValidationError("no file provided"))
		return
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
		MaxBytes:    service.MaxAPIUploadBytes,
		AccessType:  model.AccessPublic,
		KeyPrefix:   "files",
	})
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"fileId":   file.GetID(),
		"fileUrl":  fileURL(file),
		"filename": file.Filename,
		"size":     file.Size,
	})
}
