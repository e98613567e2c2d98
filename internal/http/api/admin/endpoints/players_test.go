package endpoints

import (
	"net/http"
	"testing"
	"time"

	"github.com/signage-lite/backend/internal/db"
)

func TestPairWithCode(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)

	tenant, _ := store.CreateTenant("Acme")
	player, _ := store.CreatePlayer(tenant.ID, "Lobby", nil)
	if _, err := store.CreateDevice("android", nil, "222333", time.Now().Add(15*time.Minute)); err != nil {
		t.Fatalf("seed device: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/api/admin/players/"+itoa(player.ID)+"/pair-with-code", `{"pairingCode":"222333"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if body["ok"] != true {
		t.Fatalf("expected ok:true, got %v", body)
	}
	token, _ := body["deviceToken"].(string)
	if len(token) != 64 {
		t.Fatalf("expected 64-char device token, got %q", token)
	}

	device, err := store.GetDeviceByToken(token)
	if err != nil {
		t.Fatalf("issued token does not resolve: %v", err)
	}
	if device.PlayerID == nil || *device.PlayerID != player.ID {
		t.Fatalf("device not bound to player: %v", device.PlayerID)
	}
}

// Re-pairing a player detaches the previous device and invalidates its token.
func TestPairWithCodeReplacesBinding(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)

	tenant, _ := store.CreateTenant("Acme")
	player, _ := store.CreatePlayer(tenant.ID, "Lobby", nil)

	if _, err := store.CreateDevice("android", nil, "111111", time.Now().Add(15*time.Minute)); err != nil {
		t.Fatalf("seed device: %v", err)
	}
	w := doJSON(r, http.MethodPost, "/api/admin/players/"+itoa(player.ID)+"/pair-with-code", `{"pairingCode":"111111"}`)
	firstToken := decode(t, w)["deviceToken"].(string)

	if _, err := store.CreateDevice("tizen", nil, "222222", time.Now().Add(15*time.Minute)); err != nil {
		t.Fatalf("seed device: %v", err)
	}
	if w = doJSON(r, http.MethodPost, "/api/admin/players/"+itoa(player.ID)+"/pair-with-code", `{"pairingCode":"222222"}`); w.Code != http.StatusOK {
		t.Fatalf("second pairing failed: %d", w.Code)
	}

	if _, err := store.GetDeviceByToken(firstToken); err != db.ErrNotFound {
		t.Fatalf("expected first token to be invalidated, got %v", err)
	}
}

func TestPairWithCodeUnknownPlayer(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)

	if w := doJSON(r, http.MethodPost, "/api/admin/players/404/pair-with-code", `{"pairingCode":"222333"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPairWithCodeInvalidCode(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)

	tenant, _ := store.CreateTenant("Acme")
	player, _ := store.CreatePlayer(tenant.ID, "Lobby", nil)

	if w := doJSON(r, http.MethodPost, "/api/admin/players/"+itoa(player.ID)+"/pair-with-code", `{"pairingCode":"000000"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListPlayersCarriesBindingAndPresence(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)

	tenant, _ := store.CreateTenant("Acme")
	player, _ := store.CreatePlayer(tenant.ID, "Lobby", nil)
	if _, err := store.CreateDevice("android", nil, "333444", time.Now().Add(15*time.Minute)); err != nil {
		t.Fatalf("seed device: %v", err)
	}
	if _, err := store.PairDeviceWithPlayer(player.ID, "333444", "tok-list"); err != nil {
		t.Fatalf("seed pairing: %v", err)
	}

	w := doJSON(r, http.MethodGet, "/api/admin/tenants/"+itoa(tenant.ID)+"/players", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	players := decodeList(t, w)
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	// no Redis in tests, so presence reports offline
	if players[0]["online"] != false {
		t.Fatalf("expected online:false, got %v", players[0]["online"])
	}
	device, ok := players[0]["device"].(map[string]any)
	if !ok {
		t.Fatalf("expected bound device in listing, got %v", players[0]["device"])
	}
	if device["platform"] != "android" {
		t.Fatalf("wrong device platform: %v", device["platform"])
	}
	// credentials never leak through the admin listing
	if _, leaked := device["deviceToken"]; leaked {
		t.Fatal("device token exposed in player listing")
	}
}

func TestDeletePlayerCascades(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)

	tenant, _ := store.CreateTenant("Acme")
	player, _ := store.CreatePlayer(tenant.ID, "Lobby", nil)
	playlist, _ := store.CreatePlaylist(player.ID, "Loop", nil, nil, "CONTAIN")

	w := doJSON(r, http.MethodDelete, "/api/admin/players/"+itoa(player.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, err := store.GetPlaylistByID(playlist.ID); err != db.ErrNotFound {
		t.Fatalf("playlist survived player delete: %v", err)
	}
}
