package packets

// RESPONSES FOR /api/devices and /api/device

// Device pairing lifecycle states reported by the status endpoint.
const (
	StatusNotFound = "NOT_FOUND"
	StatusPending  = "PENDING"
	StatusPaired   = "PAIRED"
)

type RegisterDeviceResponse struct {
	DeviceID    int    `json:"deviceId"`
	PairingCode string `json:"pairingCode"`
	ExpiresAt   string `json:"expiresAt"`
}

type DeviceStatusResponse struct {
	Status      string  `json:"status"`
	PlayerID    *int    `json:"playerId,omitempty"`
	DeviceToken *string `json:"deviceToken,omitempty"`
}

type PairPlayerResponse struct {
	PlayerID    int    `json:"playerId"`
	DeviceID    int    `json:"deviceId"`
	DeviceToken string `json:"deviceToken"`
}

// PlaylistItemPayload is one slide of the playback payload; type and url come
// from the referenced media asset.
type PlaylistItemPayload struct {
	ID                   int    `json:"id"`
	Type                 string `json:"type"`
	URL                  string `json:"url"`
	DurationSec          int    `json:"durationSec"`
	TransitionType       string `json:"transitionType"`
	TransitionDurationMs int    `json:"transitionDurationMs"`
}

// PlaylistPayload is what a device polls for. Version 0 with no items means
// “no content configured” and is distinguishable from any real playlist,
// which starts at version 1.
type PlaylistPayload struct {
	PlayerID     int                   `json:"playerId"`
	PlayerName   *string               `json:"playerName"`
	Location     *string               `json:"location,omitempty"`
	PlaylistName *string               `json:"playlistName"`
	Version      int                   `json:"version"`
	DesignWidth  *int                  `json:"designWidth"`
	DesignHeight *int                  `json:"designHeight"`
	FitMode      string                `json:"fitMode"`
	Items        []PlaylistItemPayload `json:"items"`
}
