// Package controller exposes the storage app over HTTP for the three trust
// domains: cookie-session users, the cookie-session admin and API-key
// clients.
package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/service"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/auth"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/jwt"
)

type Type struct {
	svc *service.Type
}

var Instance *Type

func Initialize(ctx context.Context) {
	service.Initialize(ctx)
	Instance = New(service.Instance)
}

func New(svc *service.Type) *Type {
	return &Type{svc: svc}
}

// abortErr maps the error taxonomy to a status code and a short structured
// payload. Internal detail is logged, never returned to the caller.
func abortErr(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case model.IsValidation(err):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, model.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, model.ErrInvalidPasskey):
		status, msg = http.StatusUnauthorized, "invalid passkey"
	case errors.Is(err, model.ErrForbidden):
		status, msg = http.StatusForbidden, "access denied"
	case errors.Is(err, model.ErrNotFound):
		status, msg = http.StatusNotFound, "file not found"
	case errors.Is(err, model.ErrConflict):
		status, msg = http.StatusConflict, "already exists"
	default:
		gmw.GetLogger(ctx).Error("request failed", zap.Error(err))
	}

	ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// currentUser resolves the end-user principal from the session cookie.
// Returns nil for anonymous or invalid sessions; handlers decide whether
// that is fatal.
func currentUser(ctx *gin.Context) *model.Principal {
	token, ok := auth.UserToken(ctx)
	if !ok {
		return nil
	}

	uc, err := jwt.Instance.VerifyUserToken(token)
	if err != nil {
		return nil
	}

	uid, err := primitive.ObjectIDFromHex(uc.Subject)
	if err != nil {
		return nil
	}

	return model.UserPrincipal(uid)
}

// requireUser like currentUser, but anonymous requests are rejected.
func requireUser(ctx *gin.Context) (*model.Principal, error) {
	p := currentUser(ctx)
	if p == nil {
		return nil, errors.WithStack(model.ErrUnauthenticated)
	}

	return p, nil
}

// isAdmin reports whether the request carries a valid admin session cookie.
func isAdmin(ctx *gin.Context) bool {
	token, ok := auth.AdminToken(ctx)
	if !ok {
		return false
	}

	_, err := jwt.Instance.VerifyAdminToken(token)
	return err == nil
}

// validAPIKey accepts the key from the custom header or a bearer
// authorization header and matches it against the configured set.
func validAPIKey(ctx *gin.Context) bool {
	key := ctx.GetHeader("x-api-key")
	if key == "" {
		key = strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	}
	if key == "" {
		return false
	}

	for _, valid := range gconfig.Shared.GetStringSlice("settings.api_keys") {
		if key == valid {
			return true
		}
	}

	return false
}
