package model

import "time"

// Player is a logical display/location, decoupled from the physical device.
// At most one device is bound to a player at a time; screen dimensions are
// reported by the bound device.
type Player struct {
	ID           int       `db:"id"            json:"id"`
	TenantID     int       `db:"tenant_id"     json:"tenantId"`
	Name         string    `db:"name"          json:"name"`
	Location     *string   `db:"location"      json:"location,omitempty"`
	ScreenWidth  *int      `db:"screen_width"  json:"screenWidth,omitempty"`
	ScreenHeight *int      `db:"screen_height" json:"screenHeight,omitempty"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}
