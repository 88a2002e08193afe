package server

import (
	"sync"

	"vanguard/logger"
)

// DefaultRoomID 未指定房间时使用
const DefaultRoomID = "room-1"

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	deps  Deps
}

// NewRoomManager 创建管理器；deps 会传给每个新房间
func NewRoomManager(deps Deps) *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room), deps: deps}
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		r = NewRoom(id, m.deps)
		r.OnEmpty = m.releaseIdle
		m.rooms[id] = r
		r.StartTicker()
		logger.Log.Infof("room=%s created", id)
	}
	return r
}

// GetRoom 仅查询
func (m *RoomManager) GetRoom(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// releaseIdle 房间清空时调用：在管理器锁内确认仍无人且无排队加入后才移除
// 之后的 RequestJoin 得到 ErrRoomClosed，HandleWS 会重新创建房间
func (m *RoomManager) releaseIdle(id string) {
	m.mu.Lock()
	r, ok := m.rooms[id]
	if !ok || !r.closeForJoins() {
		m.mu.Unlock()
		return
	}
	delete(m.rooms, id)
	m.mu.Unlock()
	r.StopTicker()
	logger.Log.Infof("room=%s idle, removed", id)
}

// RemoveRoom 移除房间并停止其 Tick
func (m *RoomManager) RemoveRoom(id string) {
	m.mu.Lock()
	r, ok := m.rooms[id]
	delete(m.rooms, id)
	m.mu.Unlock()
	if ok {
		r.StopTicker()
		logger.Log.Infof("room=%s removed", id)
	}
}

// Shutdown 停止所有房间
func (m *RoomManager) Shutdown() {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = make(map[string]*Room)
	m.mu.Unlock()
	for _, r := range rooms {
		r.StopTicker()
	}
}
