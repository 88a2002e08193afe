package protocol

import "vanguard/game"

// 服务端 → 客户端消息类型
const (
	MsgWelcome       = "welcome"
	MsgState         = "state"
	MsgLevelComplete = "levelComplete"
	MsgAdvice        = "advice"
	MsgGameOver      = "gameOver"
)

// 客户端 → 服务端消息类型
const (
	CmdKey     = "key"
	CmdStart   = "start"
	CmdNext    = "next"
	CmdRestart = "restart"
)

// Envelope 统一外层：{t: 类型, p: 载荷}
type Envelope struct {
	T string `json:"t" msgpack:"t"`
	P any    `json:"p" msgpack:"p"`
}

// ClientMessage 入站消息（始终为 JSON 文本帧）
// 示例：{"type":"key","key":"ArrowLeft","down":true,"seq":12}
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	Down bool   `json:"down,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

type Welcome struct {
	PilotID   string `json:"pilotId" msgpack:"pilotId"`
	Room      string `json:"room" msgpack:"room"`
	Spectator bool   `json:"spectator" msgpack:"spectator"`
	TickHz    int    `json:"tickHz" msgpack:"tickHz"`
	Width     int    `json:"width" msgpack:"width"`
	Height    int    `json:"height" msgpack:"height"`
	HighScore int    `json:"highScore" msgpack:"highScore"`
}

type State struct {
	Tick      int64              `json:"tick" msgpack:"tick"`
	Phase     string             `json:"phase" msgpack:"phase"`
	Player    PlayerSnapshot     `json:"player" msgpack:"player"`
	Enemies   []EnemySnapshot    `json:"enemies" msgpack:"enemies"`
	Bullets   []BulletSnapshot   `json:"bullets" msgpack:"bullets"`
	Particles []ParticleSnapshot `json:"particles" msgpack:"particles"`
	Stats     game.Stats         `json:"stats" msgpack:"stats"`
	HighScore int                `json:"highScore" msgpack:"highScore"`
	Sfx       []string           `json:"sfx,omitempty" msgpack:"sfx,omitempty"`
}

type PlayerSnapshot struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Lives int     `json:"lives" msgpack:"lives"`
}

type EnemySnapshot struct {
	ID     string  `json:"id" msgpack:"id"`
	Type   string  `json:"type" msgpack:"type"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Diving bool    `json:"diving,omitempty" msgpack:"diving,omitempty"`
	Color  string  `json:"color" msgpack:"color"`
}

type BulletSnapshot struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Player bool    `json:"player,omitempty" msgpack:"player,omitempty"`
}

type ParticleSnapshot struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Life  float64 `json:"life" msgpack:"life"`
	Color string  `json:"color" msgpack:"color"`
}

type LevelComplete struct {
	Stats    game.Stats `json:"stats" msgpack:"stats"`
	Accuracy float64    `json:"accuracy" msgpack:"accuracy"`
}

type Advice struct {
	Text string `json:"text" msgpack:"text"`
}

type GameOver struct {
	Score     int  `json:"score" msgpack:"score"`
	HighScore int  `json:"highScore" msgpack:"highScore"`
	NewRecord bool `json:"newRecord" msgpack:"newRecord"`
}

// BuildState 从会话生成广播快照
func BuildState(s *game.Session, highScore int, sfx []string) State {
	st := State{
		Tick:      s.TickCount(),
		Phase:     s.Phase.String(),
		Player:    PlayerSnapshot{X: s.Player.Pos.X(), Y: s.Player.Pos.Y(), Lives: s.Player.Lives},
		Enemies:   make([]EnemySnapshot, 0, len(s.Enemies)),
		Bullets:   make([]BulletSnapshot, 0, len(s.Bullets)),
		Particles: make([]ParticleSnapshot, 0, len(s.Particles)),
		Stats:     s.Snapshot(),
		HighScore: highScore,
		Sfx:       sfx,
	}
	for _, e := range s.Enemies {
		if !e.Active {
			continue
		}
		st.Enemies = append(st.Enemies, EnemySnapshot{
			ID: e.ID, Type: e.Type.String(), X: e.Pos.X(), Y: e.Pos.Y(), Diving: e.Diving, Color: e.Color,
		})
	}
	for _, b := range s.Bullets {
		st.Bullets = append(st.Bullets, BulletSnapshot{X: b.Pos.X(), Y: b.Pos.Y(), Player: b.FromPlayer})
	}
	for _, p := range s.Particles {
		st.Particles = append(st.Particles, ParticleSnapshot{X: p.Pos.X(), Y: p.Pos.Y(), Life: p.Life, Color: p.Color})
	}
	return st
}
