package db

import (
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/model"
)

const userColumns = `id, tenant_id, email, hashed_password, name, created_at, updated_at`

func (s *pgStore) ListUsers(tenantID int) ([]model.User, error) {
	var out []model.User
	err := s.db.Select(&out, `SELECT `+userColumns+` FROM users WHERE tenant_id = $1 ORDER BY id;`, tenantID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("[db] ListUsers: query failed")
		return nil, err
	}
	return out, nil
}

// inserts a new user into the tenant; hashedPassword must already be a bcrypt hash.
func (s *pgStore) CreateUser(tenantID int, email, hashedPassword string, name *string) (model.User, error) {
	var u model.User
	const q = `
	INSERT INTO users (tenant_id, email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING ` + userColumns + `;`
	if err := s.db.Get(&u, q, tenantID, email, hashedPassword, name); err != nil {
		log.Error().Err(err).Msg("[db] CreateUser: failed to insert user")
		return model.User{}, err
	}
	return u, nil
}

func (s *pgStore) DeleteUser(id int) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("[db] DeleteUser: exec failed")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
