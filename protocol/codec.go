package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec 出站编码；Binary 决定 websocket 帧类型
type Codec interface {
	Name() string
	Binary() bool
	Marshal(v any) ([]byte, error)
	Unmarshal(b []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                    { return "json" }
func (jsonCodec) Binary() bool                    { return false }
func (jsonCodec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (jsonCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                    { return "msgpack" }
func (msgpackCodec) Binary() bool                    { return true }
func (msgpackCodec) Marshal(v any) ([]byte, error)   { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(b []byte, v any) error { return msgpack.Unmarshal(b, v) }

var (
	JSON    Codec = jsonCodec{}
	MsgPack Codec = msgpackCodec{}
)

// CodecByName 按查询参数选择编码，未知或为空时回退 JSON
func CodecByName(name string) Codec {
	switch strings.ToLower(name) {
	case "msgpack", "mp":
		return MsgPack
	default:
		return JSON
	}
}

// Encode 将载荷包进信封并编码
func Encode(c Codec, t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode envelope: empty type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode envelope %q: nil payload", t)
	}
	return c.Marshal(Envelope{T: t, P: payload})
}

// DecodeClient 解析客户端 JSON 消息
func DecodeClient(b []byte) (ClientMessage, error) {
	var m ClientMessage
	if len(b) == 0 {
		return m, fmt.Errorf("decode client message: empty frame")
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("decode client message: %w", err)
	}
	m.Type = strings.ToLower(m.Type)
	return m, nil
}
