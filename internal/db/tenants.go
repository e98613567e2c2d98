package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/model"
)

func (s *pgStore) ListTenants() ([]model.Tenant, error) {
	var out []model.Tenant
	err := s.db.Select(&out, `SELECT id, name, created_at, updated_at FROM tenants ORDER BY id;`)
	if err != nil {
		log.Error().Err(err).Msg("[db] ListTenants: query failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateTenant(name string) (model.Tenant, error) {
	var t model.Tenant
	const q = `
	INSERT INTO tenants (name, created_at, updated_at)
	VALUES ($1, now(), now())
	RETURNING id, name, created_at, updated_at;`
	if err := s.db.Get(&t, q, name); err != nil {
		log.Error().Err(err).Msg("[db] CreateTenant: failed to insert tenant")
		return model.Tenant{}, err
	}
	return t, nil
}

// DeleteTenant cascades through everything the tenant owns in one
// transaction, following foreign-key dependency order: playlist items ->
// playlists -> devices -> players -> media -> users -> tenant.
func (s *pgStore) DeleteTenant(id int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return
			}
		}
	}()

	steps := []string{
		`DELETE FROM playlist_items
		 WHERE playlist_id IN (
		   SELECT pl.id FROM playlists pl
		   JOIN players p ON pl.player_id = p.id
		   WHERE p.tenant_id = $1);`,
		`DELETE FROM playlists
		 WHERE player_id IN (SELECT id FROM players WHERE tenant_id = $1);`,
		`DELETE FROM devices
		 WHERE player_id IN (SELECT id FROM players WHERE tenant_id = $1);`,
		`DELETE FROM players WHERE tenant_id = $1;`,
		`DELETE FROM media_assets WHERE tenant_id = $1;`,
		`DELETE FROM users WHERE tenant_id = $1;`,
	}
	for _, step := range steps {
		if _, err = tx.Exec(step, id); err != nil {
			log.Error().Err(err).Int("tenant_id", id).Msg("[db] DeleteTenant: cascade step failed")
			return err
		}
	}

	var res sql.Result
	if res, err = tx.Exec(`DELETE FROM tenants WHERE id = $1;`, id); err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		err = ErrNotFound
		return err
	}

	err = tx.Commit()
	return err
}
