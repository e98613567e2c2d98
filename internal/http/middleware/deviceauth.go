package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	redisclient "github.com/signage-lite/backend/internal/redis"
)

const bearerPrefix = "Bearer "

// DeviceSession is the identity triple resolved from a device bearer token.
type DeviceSession struct {
	DeviceID int
	PlayerID int
	TenantID int
}

// DeviceAuth checks “Authorization: Bearer <deviceToken>” on device-originated
// requests. A token is only valid while its device is paired to a resolvable
// player; on success the session triple is placed in the gin context and the
// device's presence is refreshed.
func DeviceAuth(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}

		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing device token"})
			return
		}

		device, err := store.GetDeviceByToken(token)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			log.Error().Err(err).Msg("[middleware] device auth: token lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if device == nil || device.PlayerID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid device token"})
			return
		}

		player, err := store.GetPlayerByID(*device.PlayerID)
		if errors.Is(err, db.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid device token"})
			return
		}
		if err != nil {
			log.Error().Err(err).Int("player_id", *device.PlayerID).Msg("[middleware] device auth: player lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set("currentDevice", &DeviceSession{
			DeviceID: device.ID,
			PlayerID: player.ID,
			TenantID: player.TenantID,
		})

		redisclient.TouchPlayer(c, player.ID)

		c.Next()
	}
}

// retrieves the *DeviceSession from the gin context (after DeviceAuth has run).
func GetCurrentDevice(c *gin.Context) (*DeviceSession, bool) {
	v, exists := c.Get("currentDevice")
	if !exists {
		return nil, false
	}
	session, ok := v.(*DeviceSession)
	return session, ok
}
