package model

import "time"

// Device is the identity of a physical client. While unpaired it carries a
// short-lived pairing code; once paired it carries a bearer token and a
// player binding instead. The two are never both set in steady state.
type Device struct {
	ID             int        `db:"id"              json:"id"`
	Platform       string     `db:"platform"        json:"platform"`
	DeviceName     *string    `db:"device_name"     json:"deviceName,omitempty"`
	PairingCode    *string    `db:"pairing_code"    json:"-"`
	PairingExpires *time.Time `db:"pairing_expires" json:"-"`
	DeviceToken    *string    `db:"device_token"    json:"-"`
	PlayerID       *int       `db:"player_id"       json:"playerId,omitempty"`
	CreatedAt      time.Time  `db:"created_at"      json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at"      json:"updatedAt"`
}
