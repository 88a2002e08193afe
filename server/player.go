package server

import "vanguard/protocol"

// PilotID 连接唯一标识
type PilotID string

// Sender 出站连接：ClientConn 实现，测试中可替换
type Sender interface {
	Enqueue(b []byte)
	Close()
}

// Pilot 房间内的一条连接；第一个加入者驾驶飞船，其余只观战
type Pilot struct {
	ID        PilotID
	Codec     protocol.Codec
	Conn      Sender
	Spectator bool

	lastSeq int64 // 已接受的最大客户端序列号
}

// send 用该连接自己的编码发送一条消息
func (p *Pilot) send(t string, payload any) {
	b, err := protocol.Encode(p.Codec, t, payload)
	if err != nil {
		return
	}
	p.Conn.Enqueue(b)
}
