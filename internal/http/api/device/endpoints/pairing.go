package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/api/device/packets"
	"github.com/signage-lite/backend/internal/token"
)

// pairingCodeTTL is how long a freshly issued pairing code stays redeemable.
const pairingCodeTTL = 15 * time.Minute

type PairingController struct {
	store db.Store
}

func NewPairingController(store db.Store) *PairingController {
	return &PairingController{store: store}
}

// PairingModule mounts the unauthenticated registration and pairing endpoints.
func PairingModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		ctl := NewPairingController(store)

		c.Group.POST("/devices/register", api.ResolveEndpointCreated(ctl.registerDevice))
		c.Group.GET("/devices/:id/status", api.ResolveEndpoint(ctl.deviceStatus))
		c.Group.POST("/players/pair", api.ResolveEndpointCreated(ctl.pairPlayer))
	})
}

// registerDevice creates a PENDING device with a fresh pairing code expiring
// 15 minutes from now.
func (p *PairingController) registerDevice(ctx *gin.Context) (any, *api.Error) {
	var req packets.RegisterDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "platform is required"}
	}

	code := token.GeneratePairingCode()
	expires := time.Now().Add(pairingCodeTTL)

	device, err := p.store.CreateDevice(req.Platform, req.DeviceName, code, expires)
	if err != nil {
		log.Error().Err(err).Msg("[pairing] register: could not create device")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	return packets.RegisterDeviceResponse{
		DeviceID:    device.ID,
		PairingCode: code,
		ExpiresAt:   expires.UTC().Format(time.RFC3339),
	}, nil
}

// deviceStatus is the device's polling endpoint while it waits to be paired.
// Absence is reported as a status, not a 404, so polling clients don't have
// to tell transport failures from not-yet-registered.
func (p *PairingController) deviceStatus(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid device id"}
	}

	device, err := p.store.GetDeviceByID(id)
	if err != nil && err != db.ErrNotFound {
		log.Error().Err(err).Int("device_id", id).Msg("[pairing] status: lookup failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	if device == nil {
		return packets.DeviceStatusResponse{Status: packets.StatusNotFound}, nil
	}
	if device.PlayerID == nil || device.DeviceToken == nil {
		return packets.DeviceStatusResponse{Status: packets.StatusPending}, nil
	}
	return packets.DeviceStatusResponse{
		Status:      packets.StatusPaired,
		PlayerID:    device.PlayerID,
		DeviceToken: device.DeviceToken,
	}, nil
}

// pairPlayer is self-service redemption: it consumes an unexpired pairing
// code, creates a new player under the tenant and hands the device its bearer
// token, all atomically.
func (p *PairingController) pairPlayer(ctx *gin.Context) (any, *api.Error) {
	var req packets.PairPlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "pairingCode, playerName and tenantId are required"}
	}

	deviceToken, err := token.GenerateDeviceToken()
	if err != nil {
		log.Error().Err(err).Msg("[pairing] pair: could not generate device token")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	device, player, err := p.store.RedeemPairingCode(req.PairingCode, req.PlayerName, req.Location, req.TenantID, deviceToken)
	if err == db.ErrCodeInvalid {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid or expired pairing code"}
	}
	if err != nil {
		log.Error().Err(err).Msg("[pairing] pair: redemption failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	return packets.PairPlayerResponse{
		PlayerID:    player.ID,
		DeviceID:    device.ID,
		DeviceToken: deviceToken,
	}, nil
}
