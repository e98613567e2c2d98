package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/api/admin/packets"
	"github.com/signage-lite/backend/internal/model"
)

type PlaylistController struct {
	store db.Store
}

func NewPlaylistController(store db.Store) *PlaylistController {
	return &PlaylistController{store: store}
}

func PlaylistModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		ctl := NewPlaylistController(store)

		c.Group.GET("/players/:id/playlists", api.ResolveEndpoint(ctl.listPlaylists))
		c.Group.POST("/players/:id/playlists", api.ResolveEndpointCreated(ctl.createPlaylist))
		c.Group.DELETE("/playlists/:id", api.ResolveEndpoint(ctl.deletePlaylist))
		c.Group.POST("/playlists/:id/activate", api.ResolveEndpoint(ctl.activatePlaylist))
		c.Group.POST("/playlists/:id/fit-mode", api.ResolveEndpoint(ctl.updateFitMode))
		c.Group.GET("/playlists/:id/items", api.ResolveEndpoint(ctl.listItems))
		c.Group.POST("/playlists/:id/items", api.ResolveEndpointCreated(ctl.addItem))
		c.Group.PUT("/playlists/:id/reorder", api.ResolveEndpoint(ctl.reorderItems))
		c.Group.DELETE("/playlist-items/:id", api.ResolveEndpoint(ctl.removeItem))
		c.Group.POST("/playlist-items/:id/transition", api.ResolveEndpoint(ctl.updateTransition))
	})
}

func (p *PlaylistController) listPlaylists(ctx *gin.Context) (any, *api.Error) {
	playerID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid player id"}
	}

	playlists, err := p.store.ListPlaylists(playerID)
	if err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("[playlist] list: could not list playlists")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return playlists, nil
}

// createPlaylist persists a new playlist at version 1. The fit mode is
// normalized here so the store only ever sees known values.
func (p *PlaylistController) createPlaylist(ctx *gin.Context) (any, *api.Error) {
	playerID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid player id"}
	}

	var req packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "name is required"}
	}

	playlist, err := p.store.CreatePlaylist(playerID, req.Name, req.DesignWidth, req.DesignHeight, model.NormalizeFitMode(req.FitMode))
	if err != nil {
		log.Error().Err(err).Msg("[playlist] create: could not create playlist")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return playlist, nil
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	if err := p.store.DeletePlaylist(id); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] delete: failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}

// activatePlaylist makes the target the single active playlist of its player,
// deactivating siblings and bumping the version in one transaction.
func (p *PlaylistController) activatePlaylist(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	if err := p.store.ActivatePlaylist(id); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] activate: failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}

func (p *PlaylistController) updateFitMode(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	var req packets.UpdateFitModeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid request body"}
	}

	playlist, err := p.store.UpdatePlaylistFitMode(id, model.NormalizeFitMode(req.FitMode))
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] fit-mode: update failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return playlist, nil
}

func (p *PlaylistController) listItems(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	items, err := p.store.ListPlaylistItems(id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] items: could not list items")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return items, nil
}

// addItem appends a media asset to the playlist (sort order after the current
// last item) and bumps the version in the same transaction.
func (p *PlaylistController) addItem(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	var req packets.AddPlaylistItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "mediaId is required"}
	}

	durationSec := 10
	if req.DurationSec != nil {
		durationSec = *req.DurationSec
	}

	item, err := p.store.AddPlaylistItem(id, req.MediaID, durationSec)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] add item: failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return item, nil
}

// reorderItems applies the whole batch atomically and bumps the playlist
// version once, not once per item.
func (p *PlaylistController) reorderItems(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	var req packets.ReorderPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "order must be an array"}
	}

	order := make([]db.ItemOrder, len(req.Order))
	for i, entry := range req.Order {
		order[i] = db.ItemOrder{ID: entry.ID, SortOrder: entry.SortOrder}
	}

	if err := p.store.ReorderPlaylistItems(id, order); err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] reorder: failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}

func (p *PlaylistController) removeItem(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist-item id"}
	}

	if err := p.store.DeletePlaylistItem(id); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist item not found"}
		}
		log.Error().Err(err).Int("item_id", id).Msg("[playlist] remove item: failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}

// updateTransition normalizes and stores the slide transition of one item and
// bumps the parent playlist version.
func (p *PlaylistController) updateTransition(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id == 0 {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist-item id"}
	}

	var req packets.UpdateTransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid request body"}
	}

	transitionType, transitionMs := model.NormalizeTransition(req.TransitionType, req.TransitionDurationMs)

	item, err := p.store.UpdateItemTransition(id, transitionType, transitionMs)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist item not found"}
		}
		log.Error().Err(err).Int("item_id", id).Msg("[playlist] transition: update failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return item, nil
}
