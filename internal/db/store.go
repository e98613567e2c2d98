// exposes a Store interface that is passed to API controllers
package db

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/signage-lite/backend/internal/model"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrCodeInvalid is returned when a pairing code does not resolve to a device
// in a pairable state (unknown, expired, or already consumed).
var ErrCodeInvalid = errors.New("invalid or expired pairing code")

// ItemOrder is one entry of a reorder batch.
type ItemOrder struct {
	ID        int
	SortOrder int
}

type Store interface {
	// device functions
	CreateDevice(platform string, deviceName *string, pairingCode string, pairingExpires time.Time) (model.Device, error)
	GetDeviceByID(id int) (*model.Device, error)
	GetDeviceByToken(token string) (*model.Device, error)
	GetDeviceForPlayer(playerID int) (*model.Device, error)
	RedeemPairingCode(pairingCode, playerName string, location *string, tenantID int, deviceToken string) (*model.Device, *model.Player, error)
	PairDeviceWithPlayer(playerID int, pairingCode, deviceToken string) (*model.Device, error)

	// player functions
	GetPlayerByID(id int) (*model.Player, error)
	ListPlayers(tenantID int) ([]model.Player, error)
	CreatePlayer(tenantID int, name string, location *string) (model.Player, error)
	DeletePlayer(id int) error
	UpdatePlayerScreen(id, screenWidth, screenHeight int) error

	// tenant functions
	ListTenants() ([]model.Tenant, error)
	CreateTenant(name string) (model.Tenant, error)
	DeleteTenant(id int) error

	// user functions
	ListUsers(tenantID int) ([]model.User, error)
	CreateUser(tenantID int, email, hashedPassword string, name *string) (model.User, error)
	DeleteUser(id int) error

	// media functions
	ListMedia(tenantID int) ([]model.MediaAsset, error)
	CreateMedia(tenantID int, filename, url, mimeType, mediaType string, sizeBytes int64) (model.MediaAsset, error)
	DeleteMedia(id int) error

	// playlist functions
	ListPlaylists(playerID int) ([]model.Playlist, error)
	GetPlaylistByID(id int) (*model.Playlist, error)
	CreatePlaylist(playerID int, name string, designWidth, designHeight *int, fitMode string) (model.Playlist, error)
	DeletePlaylist(id int) error
	ActivatePlaylist(id int) error
	UpdatePlaylistFitMode(id int, fitMode string) (*model.Playlist, error)
	GetActivePlaylistForPlayer(playerID int) (*model.Playlist, *model.Player, error)

	// playlist item functions
	ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error)
	GetPlaylistItemByID(id int) (*model.PlaylistItem, error)
	AddPlaylistItem(playlistID, mediaID, durationSec int) (model.PlaylistItem, error)
	DeletePlaylistItem(id int) error
	UpdateItemTransition(id int, transitionType string, transitionDurationMs int) (*model.PlaylistItem, error)
	ReorderPlaylistItems(playlistID int, order []ItemOrder) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
