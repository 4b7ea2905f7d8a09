package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"porch/internal/config"
	"porch/internal/scene"
	"porch/internal/state"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Rain.Count = 8
	sc := scene.New(cfg, state.New())
	runner := scene.NewRunner(sc, 120, 60, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx)

	srv := httptest.NewServer(NewServer(runner, nil).Routes())
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-runner.Done()
	})
	return srv
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func TestHealthAndState(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, http.MethodGet, srv.URL+"/api/health", "")
	if code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", code, body)
	}

	code, body = doJSON(t, http.MethodGet, srv.URL+"/api/state", "")
	if code != http.StatusOK {
		t.Fatalf("state: %d %v", code, body)
	}
	if body["season"] != "spring" || body["weather"] != "rain" {
		t.Fatalf("expected rainy spring, got %v %v", body["season"], body["weather"])
	}
	animals, ok := body["animals"].([]any)
	if !ok || len(animals) != 2 {
		t.Fatalf("expected two residents, got %v", body["animals"])
	}
}

func TestIdleEndpoint(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, http.MethodPost, srv.URL+"/api/idle", "")
	if code != http.StatusOK || body["idle"] != true {
		t.Fatalf("empty body should toggle on: %d %v", code, body)
	}
	code, body = doJSON(t, http.MethodPost, srv.URL+"/api/idle", `{"enabled":false}`)
	if code != http.StatusOK || body["idle"] != false {
		t.Fatalf("explicit disable failed: %d %v", code, body)
	}
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/idle", `{"enabled":`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad JSON, got %d", code)
	}
}

func TestInteractEndpoint(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, http.MethodPost, srv.URL+"/api/interact/"+scene.SwingID, "")
	if code != http.StatusOK || body["kind"] != "swing" {
		t.Fatalf("swing push failed: %d %v", code, body)
	}
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/interact/nobody", "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown entity, got %d", code)
	}
}

func TestAvatarEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		prop  string
		body  string
		code  int
		field string
		want  string
	}{
		{"hairColor", `{"value":"#102030"}`, http.StatusOK, "hairColor", "#102030"},
		{"accessory", `{"value":"hat"}`, http.StatusOK, "accessory", "hat"},
		{"bodyType", `{"value":"tall"}`, http.StatusBadRequest, "", ""},
		{"wings", `{"value":"yes"}`, http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		code, body := doJSON(t, http.MethodPut, srv.URL+"/api/avatar/"+tt.prop, tt.body)
		if code != tt.code {
			t.Fatalf("%s: expected %d, got %d (%v)", tt.prop, tt.code, code, body)
		}
		if tt.field != "" && body[tt.field] != tt.want {
			t.Fatalf("%s: expected %s=%s, got %v", tt.prop, tt.field, tt.want, body)
		}
	}
}

func TestStream(t *testing.T) {
	srv := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap map[string]any
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if _, ok := snap["frames"]; !ok {
		t.Fatalf("snapshot missing frames: %v", snap)
	}
}
