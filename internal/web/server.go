// Package web gin server
package web

import (
	"net/http"
	"strings"

	ginMw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/controller"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/auth"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/jwt"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/log"
)

var (
	server = gin.New()
)

// RunServer start and block on the http server.
func RunServer(addr string) {
	server.Use(
		gin.Recovery(),
		ginMw.NewLoggerMiddleware(
			ginMw.WithLoggerMwColored(),
			ginMw.WithLevel(log.Logger.Level().String()),
			ginMw.WithLogger(log.Logger.Named("gin")),
		),
		pageGate,
	)
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	server.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})

	setupRoutes(server, controller.Instance)

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(addr)))
}

func setupRoutes(e *gin.Engine, c *controller.Type) {
	// page shells, the browser app takes over from here
	for _, page := range []string{"/", "/register", "/dashboard", "/upload", "/admin"} {
		e.GET(page, servePage)
	}

	apiAuth := e.Group("/api/auth")
	apiAuth.POST("/register", c.Register)
	apiAuth.POST("/login", c.Login)
	apiAuth.POST("/logout", c.Logout)

	e.GET("/api/user/profile", c.Profile)

	apiFiles := e.Group("/api/files")
	apiFiles.POST("/upload", c.Upload)
	apiFiles.DELETE("/bulk-delete", c.BulkDelete)
	apiFiles.GET("/:id", c.Retrieve)
	apiFiles.PUT("/:id/access", c.UpdateAccess)
	apiFiles.DELETE("/:id/delete", c.Delete)

	apiAdmin := e.Group("/api/admin")
	apiAdmin.POST("/login", c.AdminLogin)
	apiAdmin.GET("/check", c.AdminCheck)
	apiAdmin.POST("/logout", c.AdminLogout)
	apiAdmin.GET("/files", c.AdminListFiles)
	apiAdmin.PUT("/files/:id", c.AdminUpdateFile)
	apiAdmin.DELETE("/files/:id", c.AdminDeleteFile)

	v1 := e.Group("/v1")
	v1.POST("/upload", c.V1Upload)
	v1.GET("/files", c.V1ListFiles)
	v1.PUT("/files/:id", c.V1UpdateFile)
	v1.DELETE("/files/:id", c.V1DeleteFile)

	e.POST("/api/upload", c.LegacyUpload)
	e.OPTIONS("/api/upload", c.LegacyUploadPreflight)
}

func servePage(ctx *gin.Context) {
	ctx.String(http.StatusOK, "storage-cdn-s3")
}

// pageGate steers page navigation by session state. API routes and
// anything it does not recognize pass through untouched.
func pageGate(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodGet {
		ctx.Next()
		return
	}

	path := ctx.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/v1/") {
		ctx.Next()
		return
	}

	switch path {
	case "/dashboard", "/upload":
		if !hasUserSession(ctx) {
			ctx.Redirect(http.StatusFound, "/")
			ctx.Abort()
			return
		}
	case "/", "/register":
		if hasUserSession(ctx) {
			ctx.Redirect(http.StatusFound, "/dashboard")
			ctx.Abort()
			return
		}
	}

	ctx.Next()
}

func hasUserSession(ctx *gin.Context) bool {
	token, ok := auth.UserToken(ctx)
	if !ok {
		return false
	}

	if _, err := jwt.Instance.VerifyUserToken(token); err != nil {
		return false
	}

	return true
}
