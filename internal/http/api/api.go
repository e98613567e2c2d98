package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signage-lite/backend/internal/http/middleware"
)

type Error struct {
	Code    int
	Message string
}

type HandlerFunc func(ctx *gin.Context) (any, *Error)
type HandlerFuncWithDevice func(ctx *gin.Context, device *middleware.DeviceSession) (any, *Error)

// ResolveEndpoint adapts a HandlerFunc to gin, writing 200 on success.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return resolve(h, http.StatusOK)
}

// ResolveEndpointCreated is ResolveEndpoint for resource-creating handlers,
// writing 201 on success.
func ResolveEndpointCreated(h HandlerFunc) gin.HandlerFunc {
	return resolve(h, http.StatusCreated)
}

// ResolveEndpointWithDevice adapts a device-scoped handler; DeviceAuth must
// have run on the route already.
func ResolveEndpointWithDevice(h HandlerFuncWithDevice) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		device, ok := middleware.GetCurrentDevice(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, device)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func resolve(h HandlerFunc, successCode int) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(successCode, result)
	}
}
