package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/api/admin/packets"
	redisclient "github.com/signage-lite/backend/internal/redis"
	"github.com/signage-lite/backend/internal/token"
)

type PlayerController struct {
	store db.Store
}

func NewPlayerController(store db.Store) *PlayerController {
	return &PlayerController{store: store}
}

func PlayerModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		ctl := NewPlayerController(store)

		c.Group.GET("/tenants/:id/players", api.ResolveEndpoint(ctl.listPlayers))
		c.Group.POST("/tenants/:id/players", api.ResolveEndpointCreated(ctl.createPlayer))
		c.Group.DELETE("/players/:id", api.ResolveEndpoint(ctl.deletePlayer))
		c.Group.POST("/players/:id/pair-with-code", api.ResolveEndpoint(ctl.pairWithCode))
	})
}

func (p *PlayerController) listPlayers(ctx *gin.Context) (any, *api.Error) {
	tenantID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid tenant id"}
	}

	players, err := p.store.ListPlayers(tenantID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("[player] list: could not list players")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	out := make([]packets.PlayerResponse, len(players))
	for i, player := range players {
		device, err := p.store.GetDeviceForPlayer(player.ID)
		if err != nil && err != db.ErrNotFound {
			log.Error().Err(err).Int("player_id", player.ID).Msg("[player] list: device lookup failed")
			return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
		}
		out[i] = packets.PlayerResponse{
			Player: player,
			Device: device,
			Online: redisclient.PlayerOnline(ctx, player.ID),
		}
	}
	return out, nil
}

func (p *PlayerController) createPlayer(ctx *gin.Context) (any, *api.Error) {
	tenantID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid tenant id"}
	}

	var req packets.CreatePlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "name is required"}
	}

	player, err := p.store.CreatePlayer(tenantID, req.Name, req.Location)
	if err != nil {
		log.Error().Err(err).Msg("[player] create: could not create player")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return player, nil
}

func (p *PlayerController) deletePlayer(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid player id"}
	}

	if err := p.store.DeletePlayer(id); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "player not found"}
		}
		log.Error().Err(err).Int("player_id", id).Msg("[player] delete: cascade failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}

// pairWithCode binds the device holding a fresh pairing code to an existing
// player. Any device previously bound to the player is detached in the same
// transaction; a player only ever has one live binding.
func (p *PlayerController) pairWithCode(ctx *gin.Context) (any, *api.Error) {
	playerID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || playerID == 0 {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid player id"}
	}

	var req packets.PairWithCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "pairingCode is required"}
	}

	deviceToken, err := token.GenerateDeviceToken()
	if err != nil {
		log.Error().Err(err).Msg("[player] pair-with-code: could not generate device token")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	device, err := p.store.PairDeviceWithPlayer(playerID, req.PairingCode, deviceToken)
	if err == db.ErrNotFound {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "player not found"}
	}
	if err == db.ErrCodeInvalid {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid or expired pairing code"}
	}
	if err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("[player] pair-with-code: binding failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	return packets.PairWithCodeResponse{
		OK:          true,
		DeviceID:    device.ID,
		PlayerID:    playerID,
		DeviceToken: deviceToken,
	}, nil
}
