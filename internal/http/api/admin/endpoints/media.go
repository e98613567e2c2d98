package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/api/admin/packets"
)

type MediaController struct {
	store db.Store
}

func NewMediaController(store db.Store) *MediaController {
	return &MediaController{store: store}
}

func MediaModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		ctl := NewMediaController(store)

		c.Group.GET("/tenants/:id/media", api.ResolveEndpoint(ctl.listMedia))
		c.Group.POST("/tenants/:id/media", api.ResolveEndpointCreated(ctl.createMedia))
		c.Group.DELETE("/media/:id", api.ResolveEndpoint(ctl.deleteMedia))
	})
}

func (m *MediaController) listMedia(ctx *gin.Context) (any, *api.Error) {
	tenantID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid tenant id"}
	}

	media, err := m.store.ListMedia(tenantID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("[media] list: could not list media")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return media, nil
}

// createMedia registers externally hosted content; no bytes are uploaded here.
func (m *MediaController) createMedia(ctx *gin.Context) (any, *api.Error) {
	tenantID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid tenant id"}
	}

	var req packets.CreateMediaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "filename, url, mimeType and mediaType are required"}
	}

	var sizeBytes int64
	if req.SizeBytes != nil {
		sizeBytes = *req.SizeBytes
	}

	asset, err := m.store.CreateMedia(tenantID, req.Filename, req.URL, req.MimeType, req.MediaType, sizeBytes)
	if err != nil {
		log.Error().Err(err).Msg("[media] create: could not create media asset")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return asset, nil
}

// deleteMedia removes the asset and any playlist items referencing it.
func (m *MediaController) deleteMedia(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid media id"}
	}

	if err := m.store.DeleteMedia(id); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "media not found"}
		}
		log.Error().Err(err).Int("media_id", id).Msg("[media] delete: failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}
