package db

import (
	"sort"
	"sync"
	"time"

	"github.com/signage-lite/backend/internal/model"
)

// MemStore is an in-memory Store used by handler tests so they can run
// without a PostgreSQL instance. It mirrors the transactional semantics of
// pgStore under a single mutex.
type MemStore struct {
	mu sync.Mutex

	devices   map[int]*model.Device
	players   map[int]*model.Player
	tenants   map[int]*model.Tenant
	users     map[int]*model.User
	media     map[int]*model.MediaAsset
	playlists map[int]*model.Playlist
	items     map[int]*model.PlaylistItem

	nextID int
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		devices:   make(map[int]*model.Device),
		players:   make(map[int]*model.Player),
		tenants:   make(map[int]*model.Tenant),
		users:     make(map[int]*model.User),
		media:     make(map[int]*model.MediaAsset),
		playlists: make(map[int]*model.Playlist),
		items:     make(map[int]*model.PlaylistItem),
		nextID:    0,
	}
}

func (m *MemStore) id() int {
	m.nextID++
	return m.nextID
}

func copyDevice(d *model.Device) *model.Device {
	out := *d
	return &out
}

func copyPlayer(p *model.Player) *model.Player {
	out := *p
	return &out
}

func (m *MemStore) CreateDevice(platform string, deviceName *string, pairingCode string, pairingExpires time.Time) (model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	d := &model.Device{
		ID:             m.id(),
		Platform:       platform,
		DeviceName:     deviceName,
		PairingCode:    &pairingCode,
		PairingExpires: &pairingExpires,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.devices[d.ID] = d
	return *d, nil
}

func (m *MemStore) GetDeviceByID(id int) (*model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.devices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDevice(d), nil
}

func (m *MemStore) GetDeviceByToken(token string) (*model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range m.devices {
		if d.DeviceToken != nil && *d.DeviceToken == token {
			return copyDevice(d), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) GetDeviceForPlayer(playerID int) (*model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *model.Device
	for _, d := range m.devices {
		if d.PlayerID == nil || *d.PlayerID != playerID {
			continue
		}
		if found == nil || d.ID < found.ID {
			found = d
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return copyDevice(found), nil
}

func (m *MemStore) findPairable(code string, allowPaired bool) *model.Device {
	now := time.Now()
	for _, d := range m.devices {
		if d.PairingCode == nil || *d.PairingCode != code {
			continue
		}
		if d.PairingExpires == nil || !d.PairingExpires.After(now) {
			continue
		}
		if !allowPaired && d.PlayerID != nil {
			continue
		}
		return d
	}
	return nil
}

func (m *MemStore) RedeemPairingCode(pairingCode, playerName string, location *string, tenantID int, deviceToken string) (*model.Device, *model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.findPairable(pairingCode, false)
	if d == nil {
		return nil, nil, ErrCodeInvalid
	}

	now := time.Now()
	p := &model.Player{
		ID:        m.id(),
		TenantID:  tenantID,
		Name:      playerName,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.players[p.ID] = p

	playerID := p.ID
	token := deviceToken
	d.PlayerID = &playerID
	d.DeviceToken = &token
	d.PairingCode = nil
	d.PairingExpires = nil
	d.UpdatedAt = now

	return copyDevice(d), copyPlayer(p), nil
}

func (m *MemStore) PairDeviceWithPlayer(playerID int, pairingCode, deviceToken string) (*model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[playerID]; !ok {
		return nil, ErrNotFound
	}

	d := m.findPairable(pairingCode, true)
	if d == nil {
		return nil, ErrCodeInvalid
	}

	now := time.Now()
	for _, other := range m.devices {
		if other.ID == d.ID {
			continue
		}
		if other.PlayerID != nil && *other.PlayerID == playerID {
			other.PlayerID = nil
			other.DeviceToken = nil
			other.PairingCode = nil
			other.PairingExpires = nil
			other.UpdatedAt = now
		}
	}

	pid := playerID
	token := deviceToken
	d.PlayerID = &pid
	d.DeviceToken = &token
	d.PairingCode = nil
	d.PairingExpires = nil
	d.UpdatedAt = now

	return copyDevice(d), nil
}

func (m *MemStore) GetPlayerByID(id int) (*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyPlayer(p), nil
}

func (m *MemStore) ListPlayers(tenantID int) ([]model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Player
	for _, p := range m.players {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) CreatePlayer(tenantID int, name string, location *string) (model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	p := &model.Player{
		ID:        m.id(),
		TenantID:  tenantID,
		Name:      name,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.players[p.ID] = p
	return *p, nil
}

func (m *MemStore) deletePlayerLocked(id int) {
	for plID, pl := range m.playlists {
		if pl.PlayerID != id {
			continue
		}
		for itemID, it := range m.items {
			if it.PlaylistID == plID {
				delete(m.items, itemID)
			}
		}
		delete(m.playlists, plID)
	}
	for devID, d := range m.devices {
		if d.PlayerID != nil && *d.PlayerID == id {
			delete(m.devices, devID)
		}
	}
	delete(m.players, id)
}

func (m *MemStore) DeletePlayer(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[id]; !ok {
		return ErrNotFound
	}
	m.deletePlayerLocked(id)
	return nil
}

func (m *MemStore) UpdatePlayerScreen(id, screenWidth, screenHeight int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		return ErrNotFound
	}
	w, h := screenWidth, screenHeight
	p.ScreenWidth = &w
	p.ScreenHeight = &h
	p.UpdatedAt = time.Now()
	return nil
}

func (m *MemStore) ListTenants() ([]model.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Tenant
	for _, t := range m.tenants {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) CreateTenant(name string) (model.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	t := &model.Tenant{ID: m.id(), Name: name, CreatedAt: now, UpdatedAt: now}
	m.tenants[t.ID] = t
	return *t, nil
}

func (m *MemStore) DeleteTenant(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tenants[id]; !ok {
		return ErrNotFound
	}
	for pID, p := range m.players {
		if p.TenantID == id {
			m.deletePlayerLocked(pID)
		}
	}
	for mediaID, asset := range m.media {
		if asset.TenantID == id {
			delete(m.media, mediaID)
		}
	}
	for userID, u := range m.users {
		if u.TenantID == id {
			delete(m.users, userID)
		}
	}
	delete(m.tenants, id)
	return nil
}

func (m *MemStore) ListUsers(tenantID int) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) CreateUser(tenantID int, email, hashedPassword string, name *string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	u := &model.User{
		ID:             m.id(),
		TenantID:       tenantID,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.users[u.ID] = u
	return *u, nil
}

func (m *MemStore) DeleteUser(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MemStore) ListMedia(tenantID int) ([]model.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.MediaAsset
	for _, a := range m.media {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) CreateMedia(tenantID int, filename, url, mimeType, mediaType string, sizeBytes int64) (model.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := &model.MediaAsset{
		ID:        m.id(),
		TenantID:  tenantID,
		Filename:  filename,
		URL:       url,
		MimeType:  mimeType,
		MediaType: mediaType,
		SizeBytes: sizeBytes,
		CreatedAt: time.Now(),
	}
	m.media[a.ID] = a
	return *a, nil
}

func (m *MemStore) DeleteMedia(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.media[id]; !ok {
		return ErrNotFound
	}
	affected := make(map[int]bool)
	for itemID, it := range m.items {
		if it.MediaID == id {
			affected[it.PlaylistID] = true
			delete(m.items, itemID)
		}
	}
	now := time.Now()
	for playlistID := range affected {
		if pl, ok := m.playlists[playlistID]; ok {
			pl.Version++
			pl.UpdatedAt = now
		}
	}
	delete(m.media, id)
	return nil
}

func (m *MemStore) ListPlaylists(playerID int) ([]model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Playlist
	for _, pl := range m.playlists {
		if pl.PlayerID == playerID {
			out = append(out, *pl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) GetPlaylistByID(id int) (*model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pl, ok := m.playlists[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *pl
	out.Items = m.listItemsLocked(id)
	return &out, nil
}

func (m *MemStore) CreatePlaylist(playerID int, name string, designWidth, designHeight *int, fitMode string) (model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	pl := &model.Playlist{
		ID:           m.id(),
		PlayerID:     playerID,
		Name:         name,
		IsActive:     false,
		Version:      1,
		DesignWidth:  designWidth,
		DesignHeight: designHeight,
		FitMode:      fitMode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.playlists[pl.ID] = pl
	return *pl, nil
}

func (m *MemStore) DeletePlaylist(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.playlists[id]; !ok {
		return ErrNotFound
	}
	for itemID, it := range m.items {
		if it.PlaylistID == id {
			delete(m.items, itemID)
		}
	}
	delete(m.playlists, id)
	return nil
}

func (m *MemStore) ActivatePlaylist(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.playlists[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	for _, pl := range m.playlists {
		if pl.PlayerID == target.PlayerID && pl.ID != id && pl.IsActive {
			pl.IsActive = false
			pl.UpdatedAt = now
		}
	}
	target.IsActive = true
	target.Version++
	target.UpdatedAt = now
	return nil
}

func (m *MemStore) UpdatePlaylistFitMode(id int, fitMode string) (*model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pl, ok := m.playlists[id]
	if !ok {
		return nil, ErrNotFound
	}
	pl.FitMode = fitMode
	pl.Version++
	pl.UpdatedAt = time.Now()
	out := *pl
	return &out, nil
}

func (m *MemStore) GetActivePlaylistForPlayer(playerID int) (*model.Playlist, *model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[playerID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	for _, pl := range m.playlists {
		if pl.PlayerID == playerID && pl.IsActive {
			out := *pl
			out.Items = m.listItemsLocked(pl.ID)
			return &out, copyPlayer(p), nil
		}
	}
	return nil, nil, nil
}

func (m *MemStore) listItemsLocked(playlistID int) []model.PlaylistItem {
	var out []model.PlaylistItem
	for _, it := range m.items {
		if it.PlaylistID != playlistID {
			continue
		}
		item := *it
		if asset, ok := m.media[it.MediaID]; ok {
			a := *asset
			item.Media = &a
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemStore) ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listItemsLocked(playlistID), nil
}

func (m *MemStore) GetPlaylistItemByID(id int) (*model.PlaylistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *it
	return &out, nil
}

func (m *MemStore) AddPlaylistItem(playlistID, mediaID, durationSec int) (model.PlaylistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pl, ok := m.playlists[playlistID]
	if !ok {
		return model.PlaylistItem{}, ErrNotFound
	}

	maxOrder := 0
	for _, it := range m.items {
		if it.PlaylistID == playlistID && it.SortOrder > maxOrder {
			maxOrder = it.SortOrder
		}
	}

	it := &model.PlaylistItem{
		ID:                   m.id(),
		PlaylistID:           playlistID,
		MediaID:              mediaID,
		SortOrder:            maxOrder + 1,
		DurationSec:          durationSec,
		TransitionType:       model.TransitionNone,
		TransitionDurationMs: 0,
		CreatedAt:            time.Now(),
	}
	m.items[it.ID] = it

	pl.Version++
	pl.UpdatedAt = time.Now()
	return *it, nil
}

func (m *MemStore) DeletePlaylistItem(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	if pl, ok := m.playlists[it.PlaylistID]; ok {
		pl.Version++
		pl.UpdatedAt = time.Now()
	}
	return nil
}

func (m *MemStore) UpdateItemTransition(id int, transitionType string, transitionDurationMs int) (*model.PlaylistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	it.TransitionType = transitionType
	it.TransitionDurationMs = transitionDurationMs
	if pl, ok := m.playlists[it.PlaylistID]; ok {
		pl.Version++
		pl.UpdatedAt = time.Now()
	}
	out := *it
	return &out, nil
}

func (m *MemStore) ReorderPlaylistItems(playlistID int, order []ItemOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range order {
		if it, ok := m.items[entry.ID]; ok && it.PlaylistID == playlistID {
			it.SortOrder = entry.SortOrder
		}
	}
	if pl, ok := m.playlists[playlistID]; ok {
		pl.Version++
		pl.UpdatedAt = time.Now()
	}
	return nil
}
