package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminConfigGetAndPost(t *testing.T) {
	m := NewRoomManager(Deps{Seed: 1})
	defer m.Shutdown()
	m.GetOrCreateRoom("room-1")

	rec := httptest.NewRecorder()
	m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodGet, "/admin/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg RoomConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, DefaultRoomConfig(), cfg)

	rec = httptest.NewRecorder()
	m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodPost, "/admin/config?room=room-1",
		strings.NewReader(`{"broadcastEvery":4,"simulateDropProb":0.25}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	r, ok := m.GetRoom("room-1")
	require.True(t, ok)
	got := r.Config()
	assert.Equal(t, 4, got.BroadcastEvery)
	assert.Equal(t, 0.25, got.SimulateDropProb)
	assert.Equal(t, DefaultRoomConfig().MaxInputsPerTick, got.MaxInputsPerTick)
}

func TestAdminConfigRejectsBadInput(t *testing.T) {
	m := NewRoomManager(Deps{Seed: 1})
	defer m.Shutdown()
	m.GetOrCreateRoom("room-1")

	cases := map[string]string{
		"invalid json":  `{`,
		"zero inputs":   `{"maxInputsPerTick":0}`,
		"drop too high": `{"simulateDropProb":1.5}`,
	}
	for name, body := range cases {
		rec := httptest.NewRecorder()
		m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodPost, "/admin/config", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	rec := httptest.NewRecorder()
	m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodDelete, "/admin/config", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodGet, "/admin/config?room=nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewRoomManager(Deps{Seed: 1})
	defer m.Shutdown()
	r := m.GetOrCreateRoom("room-1")
	r.metrics.IncLevelsCleared()

	rec := httptest.NewRecorder()
	m.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics?room=room-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Room    string         `json:"room"`
		Metrics map[string]any `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "room-1", body.Room)
	assert.Equal(t, float64(1), body.Metrics["levels_cleared"])
}

func TestParseInput(t *testing.T) {
	in, ok := ParseInput("p", protocolMessage("key", "ArrowLeft", true))
	require.True(t, ok)
	assert.Equal(t, InputKey, in.Kind)
	assert.True(t, in.Down)

	_, ok = ParseInput("p", protocolMessage("key", "", true))
	assert.False(t, ok)
	_, ok = ParseInput("p", protocolMessage("move", "", false))
	assert.False(t, ok)

	in, ok = ParseInput("p", protocolMessage("next", "", false))
	require.True(t, ok)
	assert.Equal(t, InputNext, in.Kind)
}
