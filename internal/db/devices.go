package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/model"
)

const deviceColumns = `id, platform, device_name, pairing_code, pairing_expires, device_token, player_id, created_at, updated_at`

func (s *pgStore) CreateDevice(platform string, deviceName *string, pairingCode string, pairingExpires time.Time) (model.Device, error) {
	var d model.Device
	const q = `
	INSERT INTO devices (platform, device_name, pairing_code, pairing_expires, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING ` + deviceColumns + `;`
	if err := s.db.Get(&d, q, platform, deviceName, pairingCode, pairingExpires); err != nil {
		log.Error().Err(err).Msg("[db] CreateDevice: failed to insert device")
		return model.Device{}, err
	}
	return d, nil
}

func (s *pgStore) GetDeviceByID(id int) (*model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `SELECT `+deviceColumns+` FROM devices WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("[db] GetDeviceByID: query failed")
		return nil, err
	}
	return &d, nil
}

func (s *pgStore) GetDeviceByToken(token string) (*model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `SELECT `+deviceColumns+` FROM devices WHERE device_token = $1;`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Msg("[db] GetDeviceByToken: query failed")
		return nil, err
	}
	return &d, nil
}

// GetDeviceForPlayer returns the device currently bound to the player, if any.
func (s *pgStore) GetDeviceForPlayer(playerID int) (*model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `SELECT `+deviceColumns+` FROM devices WHERE player_id = $1 ORDER BY id LIMIT 1;`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("[db] GetDeviceForPlayer: query failed")
		return nil, err
	}
	return &d, nil
}

// RedeemPairingCode consumes an unexpired, unconsumed pairing code: it creates
// a new player under the tenant, binds the matching device to it and replaces
// the code with the issued bearer token. Either the player exists with a bound
// device afterwards, or nothing changed.
func (s *pgStore) RedeemPairingCode(pairingCode, playerName string, location *string, tenantID int, deviceToken string) (*model.Device, *model.Player, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return
			}
		}
	}()

	var p model.Player
	err = tx.Get(&p, `
		INSERT INTO players (tenant_id, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING `+playerColumns+`;`,
		tenantID, playerName, location,
	)
	if err != nil {
		log.Error().Err(err).Msg("[db] RedeemPairingCode: failed to create player")
		return nil, nil, err
	}

	// The WHERE clause re-checks the pairable-state invariants so a
	// concurrent redeem of the same code rolls back instead of double-binding.
	var d model.Device
	err = tx.Get(&d, `
		UPDATE devices
		SET player_id = $1,
		    device_token = $2,
		    pairing_code = NULL,
		    pairing_expires = NULL,
		    updated_at = now()
		WHERE pairing_code = $3
		  AND pairing_expires > now()
		  AND player_id IS NULL
		RETURNING `+deviceColumns+`;`,
		p.ID, deviceToken, pairingCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrCodeInvalid
		return nil, nil, err
	}
	if err != nil {
		log.Error().Err(err).Msg("[db] RedeemPairingCode: failed to bind device")
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &d, &p, nil
}

// PairDeviceWithPlayer binds the device holding an unexpired pairing code to
// an existing player. Any devices currently bound to that player are detached
// in the same transaction; a player only ever has one live binding. Unlike
// self-service redemption the matched device may itself already be paired.
func (s *pgStore) PairDeviceWithPlayer(playerID int, pairingCode, deviceToken string) (*model.Device, error) {
	var exists bool
	if err := s.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM players WHERE id = $1);`, playerID); err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("[db] PairDeviceWithPlayer: player lookup failed")
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

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

	// Resolve the code before detaching: the matched device may itself be the
	// one currently bound to the player, and the detach step clears codes.
	var deviceID int
	err = tx.Get(&deviceID, `
		SELECT id FROM devices
		WHERE pairing_code = $1
		  AND pairing_expires > now();`,
		pairingCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrCodeInvalid
		return nil, err
	}
	if err != nil {
		log.Error().Err(err).Msg("[db] PairDeviceWithPlayer: code lookup failed")
		return nil, err
	}

	if _, err = tx.Exec(`
		UPDATE devices
		SET player_id = NULL,
		    device_token = NULL,
		    pairing_code = NULL,
		    pairing_expires = NULL,
		    updated_at = now()
		WHERE player_id = $1
		  AND id <> $2;`,
		playerID, deviceID,
	); err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("[db] PairDeviceWithPlayer: failed to detach devices")
		return nil, err
	}

	var d model.Device
	err = tx.Get(&d, `
		UPDATE devices
		SET player_id = $1,
		    device_token = $2,
		    pairing_code = NULL,
		    pairing_expires = NULL,
		    updated_at = now()
		WHERE id = $3
		  AND pairing_code = $4
		  AND pairing_expires > now()
		RETURNING `+deviceColumns+`;`,
		playerID, deviceToken, deviceID, pairingCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrCodeInvalid
		return nil, err
	}
	if err != nil {
		log.Error().Err(err).Msg("[db] PairDeviceWithPlayer: failed to bind device")
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &d, nil
}
