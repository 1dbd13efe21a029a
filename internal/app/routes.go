package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/gonotes/internal/middleware"
	"github.com/simp-lee/gonotes/internal/pkg"
)

// APIPrefix is the mount point of every module route.
const APIPrefix = "/api/v1"

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
	Tokens  pkg.TokenService
	// RateLimit is optional. Every request is limited per client IP before
	// Auth runs; the protected group also limits per user after Auth.
	RateLimit *middleware.RateLimitConfig
}

// RegisterRoutes registers the health check, the module routes and the JSON
// fallback for unknown paths.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if deps.Tokens == nil {
		return errors.New("token service is required")
	}

	r.GET("/health", healthHandler(deps.DB))

	var publicChain, protectedChain []gin.HandlerFunc
	if deps.RateLimit == nil {
		protectedChain = append(protectedChain, middleware.Auth(deps.Tokens))
	} else {
		// Separate stores: the IP buckets are shared by both groups, the user
		// buckets only see authenticated requests.
		byIP := middleware.RateLimit(*deps.RateLimit)
		byUser := middleware.RateLimit(*deps.RateLimit)
		publicChain = append(publicChain, byIP)
		protectedChain = append(protectedChain, byIP, middleware.Auth(deps.Tokens), byUser)
	}

	public := r.Group(APIPrefix, publicChain...)
	protected := r.Group(APIPrefix, protectedChain...)

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(public, protected)
	}

	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler returns a handler that pings the database and reports status.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pingDB(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "degraded",
				"components": gin.H{"database": "error"},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"components": gin.H{"database": "ok"},
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
	}
}
