package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/config"
	"github.com/forgebridge/forgebridge/pkg/handlers"
	"github.com/forgebridge/forgebridge/pkg/material"
	"github.com/forgebridge/forgebridge/pkg/scene"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Assets")
	require.NoError(t, os.MkdirAll(root, 0o755))
	assets := asset.NewFSStore("Assets", root)

	registry := command.NewRegistry()
	handlers.Register(registry, handlers.Deps{
		Assets:    assets,
		Graph:     scene.NewMemoryGraph(),
		Behaviors: scene.DefaultBehaviors(),
		Materials: material.NewStore(assets),
		Backend:   material.BackendUniversal,
	})

	cfg := config.DefaultConfig().Server
	s := New(cfg, registry, nil)
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func postCommand(t *testing.T, ts *httptest.Server, name string, params map[string]any) (*http.Response, *command.Result) {
	t.Helper()
	body, err := json.Marshal(map[string]any{"name": name, "params": params})
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/command", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var res command.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return resp, &res
}

func TestHandleCommand(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		_, ts := newTestServer(t)
		resp, res := postCommand(t, ts, "create-text-asset", map[string]any{"name": "Player"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, res.Success, res.Error)
		assert.Equal(t, "Assets/Scripts/Player.cs", res.Data["path"])
		assert.NotEmpty(t, res.CallID)
	})

	t.Run("failure stays http 200", func(t *testing.T) {
		_, ts := newTestServer(t)
		resp, res := postCommand(t, ts, "view-text-asset", map[string]any{"path": "Ghost.cs"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.False(t, res.Success)
		assert.Equal(t, string(command.CodeNotFound), res.Code)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, ts := newTestServer(t)
		_, res := postCommand(t, ts, "explode", nil)
		require.False(t, res.Success)
		assert.Equal(t, string(command.CodeUnknown), res.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, ts := newTestServer(t)
		resp, err := http.Post(ts.URL+"/api/command", "application/json", strings.NewReader("{nope"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("oversized body", func(t *testing.T) {
		s, _ := newTestServer(t)
		s.cfg.MaxBodyBytes = 64
		ts := httptest.NewServer(s.routes())
		defer ts.Close()
		big := strings.Repeat("x", 256)
		resp, err := http.Post(ts.URL+"/api/command", "application/json",
			strings.NewReader(`{"name":"create-text-asset","params":{"content":"`+big+`"}}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})
}

func TestListCommands(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/commands")
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload struct {
		Commands []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"commands"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 9, payload.Count)

	names := make([]string, 0, len(payload.Commands))
	for _, c := range payload.Commands {
		assert.NotEmpty(t, c.Description, c.Name)
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "set-material-texture")
	assert.IsIncreasing(t, names)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func dialEvents(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestEventStream(t *testing.T) {
	t.Run("command events", func(t *testing.T) {
		s, ts := newTestServer(t)
		conn := dialEvents(t, ts)
		require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 },
			time.Second, 10*time.Millisecond)

		postCommand(t, ts, "create-text-asset", map[string]any{"name": "Evt"})

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, EventCommand, ev.Type)
		payload, ok := ev.Payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "create-text-asset", payload["name"])
		assert.Equal(t, true, payload["success"])
	})

	t.Run("asset change events", func(t *testing.T) {
		s, ts := newTestServer(t)
		conn := dialEvents(t, ts)
		require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 },
			time.Second, 10*time.Millisecond)

		events := make(chan asset.Event, 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go s.ForwardAssetEvents(ctx, events)
		events <- asset.Event{Path: "Assets/Scripts/Player.cs", Op: "write"}

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, EventAssetChanged, ev.Type)
		payload, ok := ev.Payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Assets/Scripts/Player.cs", payload["path"])
	})
}
