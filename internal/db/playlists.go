package db

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/model"
)

const playlistColumns = `id, player_id, name, is_active, version, design_width, design_height, fit_mode, created_at, updated_at`

// itemWithMediaRow flattens the playlist_items/media_assets join for sqlx.
type itemWithMediaRow struct {
	model.PlaylistItem
	MediaTenantID  int    `db:"media_tenant_id"`
	MediaFilename  string `db:"media_filename"`
	MediaURL       string `db:"media_url"`
	MediaMimeType  string `db:"media_mime_type"`
	MediaMediaType string `db:"media_media_type"`
	MediaSizeBytes int64  `db:"media_size_bytes"`
}

func (s *pgStore) ListPlaylists(playerID int) ([]model.Playlist, error) {
	var out []model.Playlist
	err := s.db.Select(&out, `SELECT `+playlistColumns+` FROM playlists WHERE player_id = $1 ORDER BY id;`, playerID)
	if err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("[db] ListPlaylists: query failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetPlaylistByID(id int) (*model.Playlist, error) {
	var p model.Playlist
	err := s.db.Get(&p, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[db] GetPlaylistByID: query failed")
		return nil, err
	}

	items, err := s.ListPlaylistItems(id)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// CreatePlaylist inserts an inactive playlist at version 1. Activation is only
// ever done through ActivatePlaylist so the single-active invariant cannot be
// broken at creation time.
func (s *pgStore) CreatePlaylist(playerID int, name string, designWidth, designHeight *int, fitMode string) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (player_id, name, is_active, version, design_width, design_height, fit_mode, created_at, updated_at)
	VALUES ($1, $2, false, 1, $3, $4, $5, now(), now())
	RETURNING ` + playlistColumns + `;`
	if err := s.db.Get(&p, q, playerID, name, designWidth, designHeight, fitMode); err != nil {
		log.Error().Err(err).Msg("[db] CreatePlaylist: failed to insert playlist")
		return model.Playlist{}, err
	}
	return p, nil
}

func (s *pgStore) DeletePlaylist(id int) error {
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

	if _, err = tx.Exec(`DELETE FROM playlist_items WHERE playlist_id = $1;`, id); err != nil {
		return err
	}

	var res sql.Result
	if res, err = tx.Exec(`DELETE FROM playlists WHERE id = $1;`, id); err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		err = ErrNotFound
		return err
	}

	err = tx.Commit()
	return err
}

// ActivatePlaylist deactivates every sibling of the target playlist and
// activates the target with a version bump, all in one transaction, so
// exactly one playlist per player is ever active.
func (s *pgStore) ActivatePlaylist(id int) error {
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

	var playerID int
	err = tx.Get(&playerID, `SELECT player_id FROM playlists WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return err
	}
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[db] ActivatePlaylist: lookup failed")
		return err
	}

	if _, err = tx.Exec(`
		UPDATE playlists SET is_active = false, updated_at = now()
		WHERE player_id = $1 AND id <> $2;`, playerID, id); err != nil {
		return err
	}
	if _, err = tx.Exec(`
		UPDATE playlists SET is_active = true, version = version + 1, updated_at = now()
		WHERE id = $1;`, id); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

func (s *pgStore) UpdatePlaylistFitMode(id int, fitMode string) (*model.Playlist, error) {
	var p model.Playlist
	err := s.db.Get(&p, `
		UPDATE playlists
		SET fit_mode = $2, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING `+playlistColumns+`;`,
		id, fitMode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[db] UpdatePlaylistFitMode: exec failed")
		return nil, err
	}
	return &p, nil
}

// GetActivePlaylistForPlayer returns the active playlist with its ordered
// items and the owning player. A nil playlist with a nil error means the
// player has no content configured.
func (s *pgStore) GetActivePlaylistForPlayer(playerID int) (*model.Playlist, *model.Player, error) {
	var p model.Playlist
	err := s.db.Get(&p, `SELECT `+playlistColumns+` FROM playlists WHERE player_id = $1 AND is_active = true;`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("[db] GetActivePlaylistForPlayer: query failed")
		return nil, nil, err
	}

	items, err := s.ListPlaylistItems(p.ID)
	if err != nil {
		return nil, nil, err
	}
	p.Items = items

	player, err := s.GetPlayerByID(playerID)
	if err != nil {
		return nil, nil, err
	}
	return &p, player, nil
}

func (s *pgStore) ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	var rows []itemWithMediaRow
	const q = `
	SELECT
	  pi.id, pi.playlist_id, pi.media_id, pi.sort_order, pi.duration_sec,
	  pi.transition_type, pi.transition_duration_ms, pi.created_at,
	  m.tenant_id  AS media_tenant_id,
	  m.filename   AS media_filename,
	  m.url        AS media_url,
	  m.mime_type  AS media_mime_type,
	  m.media_type AS media_media_type,
	  m.size_bytes AS media_size_bytes
	FROM playlist_items pi
	JOIN media_assets m ON pi.media_id = m.id
	WHERE pi.playlist_id = $1
	ORDER BY pi.sort_order, pi.id;`
	if err := s.db.Select(&rows, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] ListPlaylistItems: query failed")
		return nil, err
	}

	out := make([]model.PlaylistItem, len(rows))
	for i, r := range rows {
		item := r.PlaylistItem
		item.Media = &model.MediaAsset{
			ID:        r.MediaID,
			TenantID:  r.MediaTenantID,
			Filename:  r.MediaFilename,
			URL:       r.MediaURL,
			MimeType:  r.MediaMimeType,
			MediaType: r.MediaMediaType,
			SizeBytes: r.MediaSizeBytes,
		}
		out[i] = item
	}
	return out, nil
}

const itemColumns = `id, playlist_id, media_id, sort_order, duration_sec, transition_type, transition_duration_ms, created_at`

func (s *pgStore) GetPlaylistItemByID(id int) (*model.PlaylistItem, error) {
	var it model.PlaylistItem
	err := s.db.Get(&it, `SELECT `+itemColumns+` FROM playlist_items WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("item_id", id).Msg("[db] GetPlaylistItemByID: query failed")
		return nil, err
	}
	return &it, nil
}

// AddPlaylistItem appends an item after the current highest sort order and
// bumps the playlist version in the same transaction.
func (s *pgStore) AddPlaylistItem(playlistID, mediaID, durationSec int) (model.PlaylistItem, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return model.PlaylistItem{}, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return
			}
		}
	}()

	var exists bool
	if err = tx.Get(&exists, `SELECT EXISTS (SELECT 1 FROM playlists WHERE id = $1);`, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] AddPlaylistItem: playlist lookup failed")
		return model.PlaylistItem{}, err
	}
	if !exists {
		err = ErrNotFound
		return model.PlaylistItem{}, err
	}

	var it model.PlaylistItem
	err = tx.Get(&it, `
		INSERT INTO playlist_items (playlist_id, media_id, sort_order, duration_sec, transition_type, transition_duration_ms, created_at)
		SELECT $1, $2, COALESCE(MAX(sort_order), 0) + 1, $3, 'NONE', 0, now()
		FROM playlist_items WHERE playlist_id = $1
		RETURNING `+itemColumns+`;`,
		playlistID, mediaID, durationSec,
	)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] AddPlaylistItem: failed to insert item")
		return model.PlaylistItem{}, err
	}

	if err = bumpPlaylistVersion(tx, playlistID); err != nil {
		return model.PlaylistItem{}, err
	}

	if err = tx.Commit(); err != nil {
		return model.PlaylistItem{}, err
	}
	return it, nil
}

func (s *pgStore) DeletePlaylistItem(id int) error {
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

	var playlistID int
	err = tx.Get(&playlistID, `DELETE FROM playlist_items WHERE id = $1 RETURNING playlist_id;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return err
	}
	if err != nil {
		log.Error().Err(err).Int("item_id", id).Msg("[db] DeletePlaylistItem: exec failed")
		return err
	}

	if err = bumpPlaylistVersion(tx, playlistID); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

func (s *pgStore) UpdateItemTransition(id int, transitionType string, transitionDurationMs int) (*model.PlaylistItem, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return
			}
		}
	}()

	var it model.PlaylistItem
	err = tx.Get(&it, `
		UPDATE playlist_items
		SET transition_type = $2, transition_duration_ms = $3
		WHERE id = $1
		RETURNING `+itemColumns+`;`,
		id, transitionType, transitionDurationMs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return nil, err
	}
	if err != nil {
		log.Error().Err(err).Int("item_id", id).Msg("[db] UpdateItemTransition: exec failed")
		return nil, err
	}

	if err = bumpPlaylistVersion(tx, it.PlaylistID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &it, nil
}

// ReorderPlaylistItems applies a batch of sort-order updates and bumps the
// playlist version once, not once per item. Item updates are scoped to the
// playlist so a stray id cannot touch a sibling playlist.
func (s *pgStore) ReorderPlaylistItems(playlistID int, order []ItemOrder) error {
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

	for _, entry := range order {
		if _, err = tx.Exec(`
			UPDATE playlist_items
			SET sort_order = $1
			WHERE id = $2 AND playlist_id = $3;`,
			entry.SortOrder, entry.ID, playlistID,
		); err != nil {
			log.Error().Err(err).Int("item_id", entry.ID).Msg("[db] ReorderPlaylistItems: update failed")
			return err
		}
	}

	if err = bumpPlaylistVersion(tx, playlistID); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

func bumpPlaylistVersion(tx *sqlx.Tx, playlistID int) error {
	_, err := tx.Exec(`UPDATE playlists SET version = version + 1, updated_at = now() WHERE id = $1;`, playlistID)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] failed to bump playlist version")
	}
	return err
}
