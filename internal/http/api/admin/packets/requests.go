package packets

// REQUESTS FOR /api/admin

type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type CreatePlayerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type PairWithCodeRequest struct {
	PairingCode string `json:"pairingCode" binding:"required"`
}

type CreateMediaRequest struct {
	Filename  string `json:"filename" binding:"required"`
	URL       string `json:"url" binding:"required,url"`
	MimeType  string `json:"mimeType" binding:"required"`
	MediaType string `json:"mediaType" binding:"required"`
	SizeBytes *int64 `json:"sizeBytes"`
}

type CreatePlaylistRequest struct {
	Name         string  `json:"name" binding:"required"`
	DesignWidth  *int    `json:"designWidth"`
	DesignHeight *int    `json:"designHeight"`
	FitMode      *string `json:"fitMode"`
}

type UpdateFitModeRequest struct {
	FitMode *string `json:"fitMode"`
}

type AddPlaylistItemRequest struct {
	MediaID     int  `json:"mediaId" binding:"required"`
	DurationSec *int `json:"durationSec"` // seconds; nil = default 10
}

type UpdateTransitionRequest struct {
	TransitionType       *string  `json:"transitionType"`
	TransitionDurationMs *float64 `json:"transitionDurationMs"`
}

type ItemOrderRequest struct {
	ID        int `json:"id" binding:"required"`
	SortOrder int `json:"sortOrder"`
}

type ReorderPlaylistRequest struct {
	Order []ItemOrderRequest `json:"order" binding:"required"`
}
