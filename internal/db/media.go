package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/model"
)

const mediaColumns = `id, tenant_id, filename, url, mime_type, media_type, size_bytes, created_at`

func (s *pgStore) ListMedia(tenantID int) ([]model.MediaAsset, error) {
	var out []model.MediaAsset
	err := s.db.Select(&out, `SELECT `+mediaColumns+` FROM media_assets WHERE tenant_id = $1 ORDER BY id;`, tenantID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("[db] ListMedia: query failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateMedia(tenantID int, filename, url, mimeType, mediaType string, sizeBytes int64) (model.MediaAsset, error) {
	var m model.MediaAsset
	const q = `
	INSERT INTO media_assets (tenant_id, filename, url, mime_type, media_type, size_bytes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	RETURNING ` + mediaColumns + `;`
	if err := s.db.Get(&m, q, tenantID, filename, url, mimeType, mediaType, sizeBytes); err != nil {
		log.Error().Err(err).Msg("[db] CreateMedia: failed to insert media asset")
		return model.MediaAsset{}, err
	}
	return m, nil
}

// DeleteMedia removes the asset together with any playlist items referencing
// it, in one transaction. Every playlist that loses an item gets a version
// bump so polling devices pick up the change.
func (s *pgStore) DeleteMedia(id int) error {
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
		UPDATE playlists
		SET version = version + 1, updated_at = now()
		WHERE id IN (SELECT DISTINCT playlist_id FROM playlist_items WHERE media_id = $1);`, id); err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("[db] DeleteMedia: failed to bump affected playlists")
		return err
	}

	if _, err = tx.Exec(`DELETE FROM playlist_items WHERE media_id = $1;`, id); err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("[db] DeleteMedia: failed to delete referencing items")
		return err
	}

	var res sql.Result
	if res, err = tx.Exec(`DELETE FROM media_assets WHERE id = $1;`, id); err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		err = ErrNotFound
		return err
	}

	err = tx.Commit()
	return err
}
