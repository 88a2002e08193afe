package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"vanguard/logger"
	"vanguard/protocol"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws      *websocket.Conn
	msgType int

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewClientConn binary 为 true 时以二进制帧发送（msgpack）
func NewClientConn(ws *websocket.Conn, binary bool) *ClientConn {
	msgType := websocket.TextMessage
	if binary {
		msgType = websocket.BinaryMessage
	}
	return &ClientConn{
		ws:      ws,
		msgType: msgType,
		send:    make(chan []byte, 64),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		// 为了实时性，丢弃（防止阻塞 Tick）
	}
}

// Close 关闭发送队列，写协程随之退出并关闭底层连接
func (c *ClientConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(c.msgType, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端输入，转换为 Input 注入房间
func (c *ClientConn) readPump(room *Room, pid PilotID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 Tick 线程中移除该连接
	defer room.RequestLeave(pid, c)
	c.ws.SetReadLimit(1 << 16)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Warnf("room=%s pilot=%s read: %v", room.ID, pid, err)
			}
			return
		}
		msg, err := protocol.DecodeClient(payload)
		if err != nil {
			room.metrics.IncDecodeErrors()
			continue
		}
		in, ok := ParseInput(pid, msg)
		if !ok {
			room.metrics.IncDecodeErrors()
			continue
		}
		room.OnInput(in)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?room=room-1&pilot=alice&codec=json|msgpack
func (m *RoomManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomID := q.Get("room")
	if roomID == "" {
		roomID = DefaultRoomID
	}
	pid := PilotID(q.Get("pilot"))
	if pid == "" {
		pid = PilotID(uuid.NewString())
	}
	codec := protocol.CodecByName(q.Get("codec"))

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("upgrade error: %v", err)
		return
	}

	client := NewClientConn(ws, codec.Binary())
	pilot := &Pilot{ID: pid, Codec: codec, Conn: client}

	room := m.GetOrCreateRoom(roomID)
	if err := room.RequestJoin(pilot); errors.Is(err, ErrRoomClosed) {
		// 房间恰好因清空而关闭，重建一次
		room = m.GetOrCreateRoom(roomID)
		err = room.RequestJoin(pilot)
		if err != nil {
			logger.Log.Errorf("room=%s join: %v", roomID, err)
			_ = ws.Close()
			return
		}
	}

	go client.writePump()
	go client.readPump(room, pid)
}
