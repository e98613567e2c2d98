package endpoints

import (
	"net/http"
	"testing"
	"time"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/model"
)

// pairedDevice seeds a tenant, a registered device and a redeemed pairing so
// tests can exercise the token-guarded surface directly.
func pairedDevice(t *testing.T, store *db.MemStore) (deviceToken string, playerID int) {
	t.Helper()

	tenant, err := store.CreateTenant("Acme")
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	if _, err := store.CreateDevice("android", nil, "654321", time.Now().Add(15*time.Minute)); err != nil {
		t.Fatalf("seed device: %v", err)
	}
	_, player, err := store.RedeemPairingCode("654321", "Lobby", nil, tenant.ID, "a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90")
	if err != nil {
		t.Fatalf("redeem code: %v", err)
	}
	return "a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90", player.ID
}

func TestGetPlaylistUnauthorized(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)

	if w := doJSON(r, http.MethodGet, "/api/device/playlist", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/device/playlist", "", "not-a-real-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an unknown token, got %d", w.Code)
	}
}

func TestGetPlaylistEmpty(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	token, playerID := pairedDevice(t, store)

	w := doJSON(r, http.MethodGet, "/api/device/playlist", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if int(body["playerId"].(float64)) != playerID {
		t.Fatalf("wrong playerId: %v", body["playerId"])
	}
	if body["version"].(float64) != 0 {
		t.Fatalf("expected version 0 for an unconfigured player, got %v", body["version"])
	}
	if body["fitMode"] != model.FitContain {
		t.Fatalf("expected CONTAIN fallback, got %v", body["fitMode"])
	}
	if items := body["items"].([]any); len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestGetPlaylistActive(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	token, playerID := pairedDevice(t, store)

	player, err := store.GetPlayerByID(playerID)
	if err != nil {
		t.Fatalf("player lookup: %v", err)
	}
	asset, _ := store.CreateMedia(player.TenantID, "promo.mp4", "https://cdn.example.com/promo.mp4", "video/mp4", "VIDEO", 1024)
	image, _ := store.CreateMedia(player.TenantID, "menu.png", "https://cdn.example.com/menu.png", "image/png", "IMAGE", 256)

	playlist, err := store.CreatePlaylist(playerID, "Loop", nil, nil, model.FitCover)
	if err != nil {
		t.Fatalf("seed playlist: %v", err)
	}
	if _, err := store.AddPlaylistItem(playlist.ID, asset.ID, 30); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	if _, err := store.AddPlaylistItem(playlist.ID, image.ID, 10); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	if err := store.ActivatePlaylist(playlist.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}

	w := doJSON(r, http.MethodGet, "/api/device/playlist", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decode(t, w)
	if body["playlistName"] != "Loop" {
		t.Fatalf("wrong playlist name: %v", body["playlistName"])
	}
	if body["fitMode"] != model.FitCover {
		t.Fatalf("wrong fit mode: %v", body["fitMode"])
	}
	// creation at 1, two item inserts and the activation each bump
	if body["version"].(float64) != 4 {
		t.Fatalf("expected version 4, got %v", body["version"])
	}

	items := body["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["type"] != "VIDEO" || first["url"] != "https://cdn.example.com/promo.mp4" {
		t.Fatalf("first item not resolved from media: %v", first)
	}
	if first["durationSec"].(float64) != 30 {
		t.Fatalf("wrong duration: %v", first["durationSec"])
	}
	second := items[1].(map[string]any)
	if second["type"] != "IMAGE" {
		t.Fatalf("items out of order: %v", second)
	}
}

func TestReportScreen(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	token, playerID := pairedDevice(t, store)

	w := doJSON(r, http.MethodPost, "/api/device/screen", `{"screenWidth":1920,"screenHeight":1080}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	player, err := store.GetPlayerByID(playerID)
	if err != nil {
		t.Fatalf("player lookup: %v", err)
	}
	if player.ScreenWidth == nil || *player.ScreenWidth != 1920 {
		t.Fatalf("screen width not stored: %v", player.ScreenWidth)
	}
	if player.ScreenHeight == nil || *player.ScreenHeight != 1080 {
		t.Fatalf("screen height not stored: %v", player.ScreenHeight)
	}
}

func TestReportScreenRejectsMissingFields(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	token, _ := pairedDevice(t, store)

	if w := doJSON(r, http.MethodPost, "/api/device/screen", `{"screenWidth":1920}`, token); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
