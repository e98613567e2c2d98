package endpoints

import (
	"net/http"
	"testing"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/model"
)

func seedPlayerWithMedia(t *testing.T, store *db.MemStore) (playerID, mediaID int) {
	t.Helper()
	tenant, err := store.CreateTenant("Acme")
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	player, err := store.CreatePlayer(tenant.ID, "Lobby", nil)
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	asset, err := store.CreateMedia(tenant.ID, "promo.mp4", "https://cdn.example.com/promo.mp4", "video/mp4", "VIDEO", 1024)
	if err != nil {
		t.Fatalf("seed media: %v", err)
	}
	return player.ID, asset.ID
}

func TestCreatePlaylistDefaults(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, _ := seedPlayerWithMedia(t, store)

	w := doJSON(r, http.MethodPost, "/api/admin/players/"+itoa(playerID)+"/playlists", `{"name":"Morning Loop"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if body["version"].(float64) != 1 {
		t.Fatalf("new playlists start at version 1, got %v", body["version"])
	}
	if body["isActive"] != false {
		t.Fatalf("new playlists must be inactive, got %v", body["isActive"])
	}
	if body["fitMode"] != model.FitContain {
		t.Fatalf("expected CONTAIN default, got %v", body["fitMode"])
	}
}

func TestCreatePlaylistNormalizesFitMode(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, _ := seedPlayerWithMedia(t, store)

	w := doJSON(r, http.MethodPost, "/api/admin/players/"+itoa(playerID)+"/playlists", `{"name":"Loop","fitMode":"cover"}`)
	if body := decode(t, w); body["fitMode"] != model.FitCover {
		t.Fatalf("expected COVER, got %v", body["fitMode"])
	}
}

func TestActivatePlaylistKeepsSingleActive(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, _ := seedPlayerWithMedia(t, store)

	first, _ := store.CreatePlaylist(playerID, "A", nil, nil, model.FitContain)
	second, _ := store.CreatePlaylist(playerID, "B", nil, nil, model.FitContain)

	if w := doJSON(r, http.MethodPost, "/api/admin/playlists/"+itoa(first.ID)+"/activate", ""); w.Code != http.StatusOK {
		t.Fatalf("activate A failed: %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/admin/playlists/"+itoa(second.ID)+"/activate", ""); w.Code != http.StatusOK {
		t.Fatalf("activate B failed: %d", w.Code)
	}

	a, _ := store.GetPlaylistByID(first.ID)
	b, _ := store.GetPlaylistByID(second.ID)
	if a.IsActive {
		t.Fatal("playlist A is still active after B was activated")
	}
	if !b.IsActive {
		t.Fatal("playlist B should be active")
	}
	if b.Version != 2 {
		t.Fatalf("activation should bump version to 2, got %d", b.Version)
	}
}

func TestActivatePlaylistNotFound(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)

	if w := doJSON(r, http.MethodPost, "/api/admin/playlists/404/activate", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAddItemAppendsAndBumpsVersion(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, mediaID := seedPlayerWithMedia(t, store)
	playlist, _ := store.CreatePlaylist(playerID, "Loop", nil, nil, model.FitContain)

	w := doJSON(r, http.MethodPost, "/api/admin/playlists/"+itoa(playlist.ID)+"/items", `{"mediaId":`+itoa(mediaID)+`}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	first := decode(t, w)
	if first["sortOrder"].(float64) != 1 {
		t.Fatalf("first item should get sort order 1, got %v", first["sortOrder"])
	}
	if first["durationSec"].(float64) != 10 {
		t.Fatalf("expected default duration 10, got %v", first["durationSec"])
	}

	w = doJSON(r, http.MethodPost, "/api/admin/playlists/"+itoa(playlist.ID)+"/items", `{"mediaId":`+itoa(mediaID)+`,"durationSec":30}`)
	second := decode(t, w)
	if second["sortOrder"].(float64) != 2 {
		t.Fatalf("second item should get sort order 2, got %v", second["sortOrder"])
	}

	pl, _ := store.GetPlaylistByID(playlist.ID)
	if pl.Version != 3 {
		t.Fatalf("two item inserts should leave version 3, got %d", pl.Version)
	}
}

func TestAddItemUnknownPlaylist(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	_, mediaID := seedPlayerWithMedia(t, store)

	w := doJSON(r, http.MethodPost, "/api/admin/playlists/404/items", `{"mediaId":`+itoa(mediaID)+`}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReorderBumpsVersionOnce(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, mediaID := seedPlayerWithMedia(t, store)
	playlist, _ := store.CreatePlaylist(playerID, "Loop", nil, nil, model.FitContain)

	itemA, _ := store.AddPlaylistItem(playlist.ID, mediaID, 10)
	itemB, _ := store.AddPlaylistItem(playlist.ID, mediaID, 10)
	before, _ := store.GetPlaylistByID(playlist.ID)

	body := `{"order":[{"id":` + itoa(itemA.ID) + `,"sortOrder":2},{"id":` + itoa(itemB.ID) + `,"sortOrder":1}]}`
	w := doJSON(r, http.MethodPut, "/api/admin/playlists/"+itoa(playlist.ID)+"/reorder", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	after, _ := store.GetPlaylistByID(playlist.ID)
	if after.Version != before.Version+1 {
		t.Fatalf("reorder must bump version exactly once: %d -> %d", before.Version, after.Version)
	}

	items, _ := store.ListPlaylistItems(playlist.ID)
	if items[0].ID != itemB.ID || items[1].ID != itemA.ID {
		t.Fatal("items not returned in the new order")
	}
}

func TestReorderRejectsMissingOrder(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, _ := seedPlayerWithMedia(t, store)
	playlist, _ := store.CreatePlaylist(playerID, "Loop", nil, nil, model.FitContain)

	if w := doJSON(r, http.MethodPut, "/api/admin/playlists/"+itoa(playlist.ID)+"/reorder", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateTransitionNormalizes(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, mediaID := seedPlayerWithMedia(t, store)
	playlist, _ := store.CreatePlaylist(playerID, "Loop", nil, nil, model.FitContain)
	item, _ := store.AddPlaylistItem(playlist.ID, mediaID, 10)

	w := doJSON(r, http.MethodPost, "/api/admin/playlist-items/"+itoa(item.ID)+"/transition", `{"transitionType":"fade","transitionDurationMs":99999}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["transitionType"] != model.TransitionFade {
		t.Fatalf("expected FADE, got %v", body["transitionType"])
	}
	if body["transitionDurationMs"].(float64) != 10000 {
		t.Fatalf("duration should clamp to 10000, got %v", body["transitionDurationMs"])
	}
}

func TestUpdateFitModeBumpsVersion(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, _ := seedPlayerWithMedia(t, store)
	playlist, _ := store.CreatePlaylist(playerID, "Loop", nil, nil, model.FitContain)

	w := doJSON(r, http.MethodPost, "/api/admin/playlists/"+itoa(playlist.ID)+"/fit-mode", `{"fitMode":"stretch"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["fitMode"] != model.FitStretch {
		t.Fatalf("expected STRETCH, got %v", body["fitMode"])
	}
	if body["version"].(float64) != 2 {
		t.Fatalf("fit-mode change should bump version, got %v", body["version"])
	}
}

func TestDeleteItemBumpsVersion(t *testing.T) {
	store := db.NewMemStore()
	r := newAdminRouter(store)
	playerID, mediaID := seedPlayerWithMedia(t, store)
	playlist, _ := store.CreatePlaylist(playerID, "Loop", nil, nil, model.FitContain)
	item, _ := store.AddPlaylistItem(playlist.ID, mediaID, 10)

	w := doJSON(r, http.MethodDelete, "/api/admin/playlist-items/"+itoa(item.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	pl, _ := store.GetPlaylistByID(playlist.ID)
	if pl.Version != 3 {
		t.Fatalf("add then delete should leave version 3, got %d", pl.Version)
	}
	if items, _ := store.ListPlaylistItems(playlist.ID); len(items) != 0 {
		t.Fatalf("item not removed: %d left", len(items))
	}
}
