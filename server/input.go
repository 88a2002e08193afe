package server

import "vanguard/protocol"

// InputKind 输入种类
type InputKind int

const (
	InputKey InputKind = iota
	InputStart
	InputNext
	InputRestart
)

// Input 客户端输入（意图），由服务端在 Tick 中解释并驱动会话
type Input struct {
	PilotID PilotID
	Kind    InputKind
	Key     string
	Down    bool
	Seq     int64 // 客户端本地序列号，用于去重
}

// ParseInput 将入站消息转换为输入；未知类型返回 false
func ParseInput(pid PilotID, m protocol.ClientMessage) (Input, bool) {
	in := Input{PilotID: pid, Seq: m.Seq}
	switch m.Type {
	case protocol.CmdKey:
		if m.Key == "" {
			return in, false
		}
		in.Kind, in.Key, in.Down = InputKey, m.Key, m.Down
	case protocol.CmdStart:
		in.Kind = InputStart
	case protocol.CmdNext:
		in.Kind = InputNext
	case protocol.CmdRestart:
		in.Kind = InputRestart
	default:
		return in, false
	}
	return in, true
}
