package server

import (
	"encoding/json"
	"net/http"

	"vanguard/logger"
)

func (m *RoomManager) roomFromQuery(w http.ResponseWriter, r *http.Request) (*Room, string, bool) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoomID
	}
	room, ok := m.GetRoom(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return nil, roomID, false
	}
	return room, roomID, true
}

// HandleAdminConfig 提供房间配置的读取与更新（热更新）
// GET /admin/config?room=room-1  返回当前配置
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	room, roomID, ok := m.roomFromQuery(w, r)
	if !ok {
		return
	}

	type cfg struct {
		MaxInputsPerTick *int     `json:"maxInputsPerTick,omitempty"`
		BroadcastEvery   *int     `json:"broadcastEvery,omitempty"`
		SimulateDropProb *float64 `json:"simulateDropProb,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, room.Config())
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if (body.MaxInputsPerTick != nil && *body.MaxInputsPerTick < 1) ||
			(body.BroadcastEvery != nil && *body.BroadcastEvery < 1) ||
			(body.SimulateDropProb != nil && (*body.SimulateDropProb < 0 || *body.SimulateDropProb > 1)) {
			http.Error(w, "value out of range", http.StatusBadRequest)
			return
		}
		cur := room.UpdateConfig(func(c *RoomConfig) {
			if body.MaxInputsPerTick != nil {
				c.MaxInputsPerTick = *body.MaxInputsPerTick
			}
			if body.BroadcastEvery != nil {
				c.BroadcastEvery = *body.BroadcastEvery
			}
			if body.SimulateDropProb != nil {
				c.SimulateDropProb = *body.SimulateDropProb
			}
		})
		logger.Log.Infof("config updated: room=%s maxInputsPerTick=%d broadcastEvery=%d drop=%.2f",
			roomID, cur.MaxInputsPerTick, cur.BroadcastEvery, cur.SimulateDropProb)
		writeJSON(w, map[string]any{"ok": true, "config": cur})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, roomID, ok := m.roomFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"room":    roomID,
		"metrics": room.metrics.Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
