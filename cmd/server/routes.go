package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	adminapi "github.com/signage-lite/backend/internal/http/api/admin/endpoints"
	deviceapi "github.com/signage-lite/backend/internal/http/api/device/endpoints"
	"github.com/signage-lite/backend/internal/http/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "signage backend is up. Use /health or the /api routes.")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "signage backend running"})
	})

	// registration and pairing need no credential
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		deviceapi.PairingModule(store),
	)

	// everything a paired device polls goes through the session guard
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/device",
		Middleware: []gin.HandlerFunc{middleware.DeviceAuth(store)},
	},
		deviceapi.PlaybackModule(store),
	)

	// admin surface sits behind the deployment's trust boundary
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		adminapi.TenantModule(store),
		adminapi.UserModule(store),
		adminapi.PlayerModule(store),
		adminapi.MediaModule(store),
		adminapi.PlaylistModule(store),
	)

	// Static content
	r.Static("/public", env.StaticDir)
}
