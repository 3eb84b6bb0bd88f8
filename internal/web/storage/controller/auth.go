package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/dto"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/auth"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/jwt"
)

// Register creates an account and opens a session for it.
func (c *Type) Register(ctx *gin.Context) {
	req := new(dto.CredentialsRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortErr(ctx, model.NewValidationError("email and password are required"))
		return
	}

	user, err := c.svc.UserRegister(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		// a duplicate account answers 400 like any other rejected form input
		if errors.Is(err, model.ErrConflict) {
			abortErr(ctx, model.NewValidationError("user already exists"))
			return
		}
		abortErr(ctx, err)
		return
	}

	token, err := jwt.Instance.SignUserToken(user.GetID(), user.Email)
	if err != nil {
		abortErr(ctx, err)
		return
	}
	auth.SetUserCookie(ctx, token)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"userId":  user.GetID(),
	})
}

// Login validates credentials and opens a session.
func (c *Type) Login(ctx *gin.Context) {
	req := new(dto.CredentialsRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortErr(ctx, model.NewValidationError("email and password are required"))
		return
	}

	user, err := c.svc.ValidateLogin(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		gmw.GetLogger(ctx).Debug("user login rejected", zap.Error(err))
		abortErr(ctx, model.ErrInvalidCredentials)
		return
	}

	token, err := jwt.Instance.SignUserToken(user.GetID(), user.Email)
	if err != nil {
		abortErr(ctx, err)
		return
	}
	auth.SetUserCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"userId":  user.GetID(),
	})
}

// Logout drops the user session cookie.
func (c *Type) Logout(ctx *gin.Context) {
	auth.ClearUserCookie(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Profile returns the authenticated user and his files, newest first.
func (c *Type) Profile(ctx *gin.Context) {
	p, err := requireUser(ctx)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	user, files, err := c.svc.Profile(ctx.Request.Context(), p.UserID)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	views := make([]*dto.FileView, 0, len(files))
	for _, f := range files {
		views = append(views, dto.NewFileView(f, fileURL(f)))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":  dto.NewUserView(user),
		"files": views,
	})
}

// AdminLogin checks the configured admin credentials and opens an admin
// session. Admin identity never touches the database.
func (c *Type) AdminLogin(ctx *gin.Context) {
	req := new(dto.CredentialsRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortErr(ctx, model.NewValidationError("email and password required"))
		return
	}

	if err := c.svc.ValidateAdminLogin(req.Email, req.Password); err != nil {
		abortErr(ctx, model.ErrInvalidCredentials)
		return
	}

	token, err := jwt.Instance.SignAdminToken()
	if err != nil {
		abortErr(ctx, err)
		return
	}
	auth.SetAdminCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful"})
}

// AdminCheck reports whether the admin session is live.
func (c *Type) AdminCheck(ctx *gin.Context) {
	if !isAdmin(ctx) {
		abortErr(ctx, model.ErrUnauthenticated)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "authenticated": true})
}

// AdminLogout drops the admin session cookie.
func (c *Type) AdminLogout(ctx *gin.Context) {
	auth.ClearAdminCookie(ctx)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
