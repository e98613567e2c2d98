package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/middleware"
)

func newDeviceRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, PairingModule(store))
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/device",
		Middleware: []gin.HandlerFunc{middleware.DeviceAuth(store)},
	}, PlaybackModule(store))

	return r
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRegisterDevice(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)

	w := doJSON(r, http.MethodPost, "/api/devices/register", `{"platform":"android"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	code, _ := body["pairingCode"].(string)
	if len(code) != 6 {
		t.Fatalf("expected 6-digit pairing code, got %q", code)
	}
	expiresAt, err := time.Parse(time.RFC3339, body["expiresAt"].(string))
	if err != nil {
		t.Fatalf("expiresAt is not RFC3339: %v", err)
	}
	// codes live for 15 minutes from issuance
	if offset := time.Until(expiresAt); offset < 14*time.Minute || offset > 15*time.Minute+time.Second {
		t.Fatalf("expected expiry ~15 minutes out, got %s", offset)
	}
	if body["deviceId"].(float64) == 0 {
		t.Fatal("expected a device id")
	}
}

func TestRegisterDeviceRequiresPlatform(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)

	w := doJSON(r, http.MethodPost, "/api/devices/register", `{}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDeviceStatusLifecycle(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	tenant, _ := store.CreateTenant("Acme")

	// absent devices are reported as a status, not a 404
	w := doJSON(r, http.MethodGet, "/api/devices/999/status", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if status := decode(t, w)["status"]; status != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", status)
	}

	w = doJSON(r, http.MethodPost, "/api/devices/register", `{"platform":"android"}`, "")
	reg := decode(t, w)
	deviceID := int(reg["deviceId"].(float64))
	code := reg["pairingCode"].(string)

	w = doJSON(r, http.MethodGet, "/api/devices/"+itoa(deviceID)+"/status", "", "")
	if status := decode(t, w)["status"]; status != "PENDING" {
		t.Fatalf("expected PENDING, got %v", status)
	}

	w = doJSON(r, http.MethodPost, "/api/players/pair",
		`{"pairingCode":"`+code+`","playerName":"Lobby","tenantId":`+itoa(tenant.ID)+`}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	paired := decode(t, w)
	if tok, _ := paired["deviceToken"].(string); len(tok) != 64 {
		t.Fatalf("expected 64-char device token, got %q", tok)
	}

	w = doJSON(r, http.MethodGet, "/api/devices/"+itoa(deviceID)+"/status", "", "")
	status := decode(t, w)
	if status["status"] != "PAIRED" {
		t.Fatalf("expected PAIRED, got %v", status["status"])
	}
	if status["deviceToken"] != paired["deviceToken"] {
		t.Fatal("status token does not match the token issued at pairing")
	}
	if status["playerId"] != paired["playerId"] {
		t.Fatal("status player does not match the player created at pairing")
	}
}

func TestPairPlayerInvalidCode(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	tenant, _ := store.CreateTenant("Acme")

	w := doJSON(r, http.MethodPost, "/api/players/pair",
		`{"pairingCode":"000000","playerName":"Lobby","tenantId":`+itoa(tenant.ID)+`}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPairingCodeSingleUse(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	tenant, _ := store.CreateTenant("Acme")

	w := doJSON(r, http.MethodPost, "/api/devices/register", `{"platform":"tizen"}`, "")
	code := decode(t, w)["pairingCode"].(string)

	body := `{"pairingCode":"` + code + `","playerName":"Lobby","tenantId":` + itoa(tenant.ID) + `}`
	if w = doJSON(r, http.MethodPost, "/api/players/pair", body, ""); w.Code != http.StatusCreated {
		t.Fatalf("first redemption failed: %d", w.Code)
	}
	if w = doJSON(r, http.MethodPost, "/api/players/pair", body, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected second redemption to fail with 400, got %d", w.Code)
	}
}

func TestPairPlayerExpiredCode(t *testing.T) {
	store := db.NewMemStore()
	r := newDeviceRouter(store)
	tenant, _ := store.CreateTenant("Acme")

	if _, err := store.CreateDevice("android", nil, "123456", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("seed device: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/api/players/pair",
		`{"pairingCode":"123456","playerName":"Lobby","tenantId":`+itoa(tenant.ID)+`}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for expired code, got %d", w.Code)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
