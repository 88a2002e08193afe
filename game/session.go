package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Phase 会话状态：Menu → Playing → {LevelTransition → Playing, GameOver}
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseLevelTransition
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePlaying:
		return "PLAYING"
	case PhaseLevelTransition:
		return "LEVEL_TRANSITION"
	case PhaseGameOver:
		return "GAME_OVER"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// ErrInvalidTransition 当前状态不允许该操作
var ErrInvalidTransition = errors.New("invalid phase transition")

// Session 单个玩家的一局游戏，所有可变状态只由持有它的线程访问
type Session struct {
	Phase     Phase
	Level     int
	Player    Player
	Enemies   []Enemy
	Bullets   []Bullet
	Particles []Particle
	Stats     Stats
	Input     Input
	Tuning    Tuning

	tick            int64
	clock           time.Duration
	formationOffset float64
	formationDir    float64
	lastShot        time.Duration
	nextBulletID    uint64

	rng    *rand.Rand
	audio  Audio
	events Events
}

// NewSession 创建处于 Menu 状态的会话；audio/events 可为 nil
func NewSession(rng *rand.Rand, audio Audio, events Events) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if audio == nil {
		audio = NopAudio{}
	}
	if events == nil {
		events = NopEvents{}
	}
	s := &Session{
		Phase:        PhaseMenu,
		Level:        1,
		Tuning:       DefaultTuning(),
		formationDir: 1,
		rng:          rng,
		audio:        audio,
		events:       events,
	}
	s.resetPlayer()
	return s
}

// SetHooks 替换协作方（例如房间在创建会话后再挂上自己）
func (s *Session) SetHooks(audio Audio, events Events) {
	if audio != nil {
		s.audio = audio
	}
	if events != nil {
		s.events = events
	}
}

// TickCount 已推进的帧数
func (s *Session) TickCount() int64 { return s.tick }

// Clock 模拟时钟
func (s *Session) Clock() time.Duration { return s.clock }

// FormationOffset 当前编队横向偏移
func (s *Session) FormationOffset() float64 { return s.formationOffset }

// Snapshot 统计快照（值拷贝）
func (s *Session) Snapshot() Stats {
	st := s.Stats
	st.Lives = s.Player.Lives
	st.Level = s.Level
	return st
}

// ActiveEnemies 存活敌机数
func (s *Session) ActiveEnemies() int {
	n := 0
	for i := range s.Enemies {
		if s.Enemies[i].Active {
			n++
		}
	}
	return n
}

// Start 从 Menu 或 GameOver 开新局：分数/关卡/生命全部重置
func (s *Session) Start() error {
	if s.Phase != PhaseMenu && s.Phase != PhaseGameOver {
		return fmt.Errorf("start from %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.Level = 1
	s.Stats = Stats{Level: 1, Lives: StartingLives}
	s.resetPlayer()
	s.Bullets = s.Bullets[:0]
	s.Particles = s.Particles[:0]
	s.Input.Reset()
	s.lastShot = s.clock - s.Tuning.FireCooldown
	s.initLevel()
	s.Phase = PhasePlaying
	s.audio.LevelUp()
	return nil
}

// NextLevel 关卡过渡中确认"下一星区"：关卡 +1，重建敌阵
func (s *Session) NextLevel() error {
	if s.Phase != PhaseLevelTransition {
		return fmt.Errorf("next level from %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.Level++
	s.Stats.Level = s.Level
	s.initLevel()
	s.Phase = PhasePlaying
	s.audio.LevelUp()
	return nil
}

func (s *Session) resetPlayer() {
	s.Player = Player{Pos: V(Width/2, PlayerStartY), Lives: StartingLives}
}

// initLevel 按行列布局批量生成敌阵，复用底层数组
func (s *Session) initLevel() {
	rows := GridRows(s.Level)
	startX := (Width - GridCols*GridSpacingX) / 2
	s.Enemies = s.Enemies[:0]
	for r := 0; r < rows; r++ {
		t := rowType(r)
		for c := 0; c < GridCols; c++ {
			p := V(startX+float64(c)*GridSpacingX, GridStartY+float64(r)*GridSpacingY)
			s.Enemies = append(s.Enemies, Enemy{
				ID:     fmt.Sprintf("enemy-%d-%d", r, c),
				Type:   t,
				Pos:    p,
				Origin: p,
				Active: true,
				Color:  t.Color(),
			})
		}
	}
}

// completeLevel 敌机清空：进入过渡态并发出一次统计快照
func (s *Session) completeLevel() {
	s.Phase = PhaseLevelTransition
	s.Input.Reset()
	s.events.LevelComplete(s.Snapshot())
}

// damagePlayer 扣一条命；从 1 到 0 时触发且只触发一次 GameOver
func (s *Session) damagePlayer() {
	if s.Player.Lives == 0 {
		return
	}
	s.audio.PlayerHit()
	s.Player.Lives--
	s.Stats.Lives = s.Player.Lives
	if s.Player.Lives == 0 {
		s.Phase = PhaseGameOver
		s.Input.Reset()
		s.events.GameOver(s.Snapshot())
	}
}
