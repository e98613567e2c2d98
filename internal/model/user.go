package model

import "time"

// User is an administrative account owned by a tenant. Only the bcrypt hash
// of the password is ever stored.
type User struct {
	ID             int       `db:"id"              json:"id"`
	TenantID       int       `db:"tenant_id"       json:"tenantId"`
	Email          string    `db:"email"           json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Name           *string   `db:"name"            json:"name,omitempty"`
	CreatedAt      time.Time `db:"created_at"      json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updatedAt"`
}
