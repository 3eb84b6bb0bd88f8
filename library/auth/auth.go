// Package auth carries the session cookies for the web surface.
package auth

import (
	"net/http"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/gin-gonic/gin"

	"github.com/Sooraj-Rao/storage-cdn-s3/library/jwt"
)

const (
	// UserCookieName end-user session cookie
	UserCookieName = "auth-token"
	// AdminCookieName admin session cookie
	AdminCookieName = "admin-token"
)

// secureCookies reports whether cookies should require TLS.
// Debug deployments run behind plain http.
func secureCookies() bool {
	return !gconfig.Shared.GetBool("debug")
}

func setCookie(ctx *gin.Context, name, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(name, token, maxAge, "/", "", secureCookies(), true)
}

// SetUserCookie attach the user session token as an http-only lax cookie.
func SetUserCookie(ctx *gin.Context, token string) {
	setCookie(ctx, UserCookieName, token, int(jwt.UserTokenTTL.Seconds()))
}

// ClearUserCookie drop the user session cookie.
func ClearUserCookie(ctx *gin.Context) {
	setCookie(ctx, UserCookieName, "", -1)
}

// SetAdminCookie attach the admin session token as an http-only lax cookie.
func SetAdminCookie(ctx *gin.Context, token string) {
	setCookie(ctx, AdminCookieName, token, int(jwt.AdminTokenTTL.Seconds()))
}

// ClearAdminCookie drop the admin session cookie.
func ClearAdminCookie(ctx *gin.Context) {
	setCookie(ctx, AdminCookieName, "", -1)
}

// UserToken returns the raw user session token, if the cookie is present.
func UserToken(ctx *gin.Context) (string, bool) {
	token, err := ctx.Cookie(UserCookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// AdminToken returns the raw admin session token, if the cookie is present.
func AdminToken(ctx *gin.Context) (string, bool) {
	token, err := ctx.Cookie(AdminCookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
