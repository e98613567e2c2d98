package packets

// REQUESTS FOR /api/devices and /api/device

type RegisterDeviceRequest struct {
	Platform   string  `json:"platform" binding:"required"`
	DeviceName *string `json:"deviceName"`
}

type PairPlayerRequest struct {
	PairingCode string  `json:"pairingCode" binding:"required"`
	PlayerName  string  `json:"playerName" binding:"required"`
	Location    *string `json:"location"`
	TenantID    int     `json:"tenantId" binding:"required"`
}

// ReportScreenRequest carries the dimensions a device measured for its
// display. Pointers so that presence is checked, not zero-ness.
type ReportScreenRequest struct {
	ScreenWidth  *float64 `json:"screenWidth" binding:"required"`
	ScreenHeight *float64 `json:"screenHeight" binding:"required"`
}
