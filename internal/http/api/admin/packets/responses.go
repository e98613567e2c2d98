package packets

import "github.com/signage-lite/backend/internal/model"

// RESPONSES FOR /api/admin

// PlayerResponse decorates a player with its bound device (if any) and its
// live presence flag.
type PlayerResponse struct {
	model.Player
	Device *model.Device `json:"device,omitempty"`
	Online bool          `json:"online"`
}

type PairWithCodeResponse struct {
	OK          bool   `json:"ok"`
	DeviceID    int    `json:"deviceId"`
	PlayerID    int    `json:"playerId"`
	DeviceToken string `json:"deviceToken"`
}
