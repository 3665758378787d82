package v1

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	// The method check precedes validation: a wrong-method request gets the
	// fixed 405 body before anything reads it.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "")
	})

	// Contact form: the one endpoint that triggers outbound email, so it
	// carries its own stricter limit.
	contact := api.Group("")
	contact.Use(middleware.RateLimitMiddleware(
		middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window)))
	NewContactHandler(contact, deps.ContactUC)

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerNoRoute(r, deps.Config.StaticDir)

	return r
}

// registerNoRoute serves the built SPA bundle when STATIC_DIR is set,
// falling back to index.html for client-side routes. API misses stay JSON.
func registerNoRoute(r *gin.Engine, staticDir string) {
	r.NoRoute(func(c *gin.Context) {
		if staticDir == "" ||
			c.Request.Method != http.MethodGet ||
			strings.HasPrefix(c.Request.URL.Path, "/api") {
			response.Error(c, http.StatusNotFound, "Not found")
			return
		}

		// Clean with a leading slash so ".." cannot escape the bundle dir
		path := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})
}
