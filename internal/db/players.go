package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/model"
)

const playerColumns = `id, tenant_id, name, location, screen_width, screen_height, created_at, updated_at`

func (s *pgStore) GetPlayerByID(id int) (*model.Player, error) {
	var p model.Player
	err := s.db.Get(&p, `SELECT `+playerColumns+` FROM players WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("player_id", id).Msg("[db] GetPlayerByID: query failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) ListPlayers(tenantID int) ([]model.Player, error) {
	var out []model.Player
	err := s.db.Select(&out, `SELECT `+playerColumns+` FROM players WHERE tenant_id = $1 ORDER BY id;`, tenantID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("[db] ListPlayers: query failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreatePlayer(tenantID int, name string, location *string) (model.Player, error) {
	var p model.Player
	const q = `
	INSERT INTO players (tenant_id, name, location, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING ` + playerColumns + `;`
	if err := s.db.Get(&p, q, tenantID, name, location); err != nil {
		log.Error().Err(err).Msg("[db] CreatePlayer: failed to insert player")
		return model.Player{}, err
	}
	return p, nil
}

// DeletePlayer removes the player and everything hanging off it, innermost
// entities first, in one transaction.
func (s *pgStore) DeletePlayer(id int) error {
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

	if _, err = tx.Exec(`
		DELETE FROM playlist_items
		WHERE playlist_id IN (SELECT id FROM playlists WHERE player_id = $1);`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM playlists WHERE player_id = $1;`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM devices WHERE player_id = $1;`, id); err != nil {
		return err
	}

	var res sql.Result
	if res, err = tx.Exec(`DELETE FROM players WHERE id = $1;`, id); err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		err = ErrNotFound
		return err
	}

	err = tx.Commit()
	return err
}

func (s *pgStore) UpdatePlayerScreen(id, screenWidth, screenHeight int) error {
	res, err := s.db.Exec(`
		UPDATE players
		SET screen_width = $2,
		    screen_height = $3,
		    updated_at = now()
		WHERE id = $1;`,
		id, screenWidth, screenHeight,
	)
	if err != nil {
		log.Error().Err(err).Int("player_id", id).Msg("[db] UpdatePlayerScreen: exec failed")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
