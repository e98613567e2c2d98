package endpoints

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/api/device/packets"
	"github.com/signage-lite/backend/internal/http/middleware"
	"github.com/signage-lite/backend/internal/model"
)

type PlaybackController struct {
	store db.Store
}

func NewPlaybackController(store db.Store) *PlaybackController {
	return &PlaybackController{store: store}
}

// PlaybackModule mounts the token-guarded endpoints a paired device polls.
func PlaybackModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		ctl := NewPlaybackController(store)

		c.Group.GET("/playlist", api.ResolveEndpointWithDevice(ctl.getPlaylist))
		c.Group.POST("/screen", api.ResolveEndpointWithDevice(ctl.reportScreen))
	})
}

// getPlaylist returns the active playlist for the calling device's player.
// When nothing is active the payload carries version 0 and no items, never a
// 404; real playlists start at version 1, so the device's change detection
// stays a plain integer comparison.
func (p *PlaybackController) getPlaylist(ctx *gin.Context, device *middleware.DeviceSession) (any, *api.Error) {
	playlist, player, err := p.store.GetActivePlaylistForPlayer(device.PlayerID)
	if err != nil {
		log.Error().Err(err).Int("player_id", device.PlayerID).Msg("[playback] playlist: lookup failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	if playlist == nil {
		return packets.PlaylistPayload{
			PlayerID: device.PlayerID,
			Version:  0,
			FitMode:  model.FitContain,
			Items:    []packets.PlaylistItemPayload{},
		}, nil
	}

	items := make([]packets.PlaylistItemPayload, len(playlist.Items))
	for i, it := range playlist.Items {
		items[i] = packets.PlaylistItemPayload{
			ID:                   it.ID,
			Type:                 it.Media.MediaType,
			URL:                  it.Media.URL,
			DurationSec:          it.DurationSec,
			TransitionType:       it.TransitionType,
			TransitionDurationMs: it.TransitionDurationMs,
		}
	}

	return packets.PlaylistPayload{
		PlayerID:     device.PlayerID,
		PlayerName:   &player.Name,
		Location:     player.Location,
		PlaylistName: &playlist.Name,
		Version:      playlist.Version,
		DesignWidth:  playlist.DesignWidth,
		DesignHeight: playlist.DesignHeight,
		FitMode:      playlist.FitMode,
		Items:        items,
	}, nil
}

// reportScreen stores the dimensions the device measured on its player.
func (p *PlaybackController) reportScreen(ctx *gin.Context, device *middleware.DeviceSession) (any, *api.Error) {
	var req packets.ReportScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "screenWidth and screenHeight must be numbers"}
	}

	width, height := *req.ScreenWidth, *req.ScreenHeight
	if math.IsNaN(width) || math.IsInf(width, 0) || math.IsNaN(height) || math.IsInf(height, 0) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "screenWidth and screenHeight must be finite numbers"}
	}

	if err := p.store.UpdatePlayerScreen(device.PlayerID, int(width), int(height)); err != nil {
		log.Error().Err(err).Int("player_id", device.PlayerID).Msg("[playback] screen: update failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	return gin.H{"ok": true}, nil
}
