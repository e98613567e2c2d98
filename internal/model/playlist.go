package model

import "time"

// Playlist is the ordered, versioned content list for one player. The version
// counter is the cheap change-detection signal polled devices compare; every
// structural mutation bumps it by exactly one. At most one playlist per
// player is active.
type Playlist struct {
	ID           int            `db:"id"            json:"id"`
	PlayerID     int            `db:"player_id"     json:"playerId"`
	Name         string         `db:"name"          json:"name"`
	IsActive     bool           `db:"is_active"     json:"isActive"`
	Version      int            `db:"version"       json:"version"`
	DesignWidth  *int           `db:"design_width"  json:"designWidth,omitempty"`
	DesignHeight *int           `db:"design_height" json:"designHeight,omitempty"`
	FitMode      string         `db:"fit_mode"      json:"fitMode"`
	CreatedAt    time.Time      `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at"    json:"updatedAt"`
	Items        []PlaylistItem `db:"-"             json:"items,omitempty"`
}

type PlaylistItem struct {
	ID                   int         `db:"id"                     json:"id"`
	PlaylistID           int         `db:"playlist_id"            json:"playlistId"`
	MediaID              int         `db:"media_id"               json:"mediaId"`
	SortOrder            int         `db:"sort_order"             json:"sortOrder"`
	DurationSec          int         `db:"duration_sec"           json:"durationSec"`
	TransitionType       string      `db:"transition_type"        json:"transitionType"`
	TransitionDurationMs int         `db:"transition_duration_ms" json:"transitionDurationMs"`
	CreatedAt            time.Time   `db:"created_at"             json:"createdAt"`
	Media                *MediaAsset `db:"-"                      json:"media,omitempty"`
}
