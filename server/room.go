package server

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"vanguard/advisor"
	"vanguard/game"
	"vanguard/logger"
	"vanguard/protocol"
	"vanguard/store"
)

// ErrRoomClosed 房间已停止 Tick，不再接受加入
var ErrRoomClosed = errors.New("room closed")

// RoomConfig 可通过 /admin/config 热更新的运行参数
type RoomConfig struct {
	MaxInputsPerTick int     `json:"maxInputsPerTick"`
	BroadcastEvery   int     `json:"broadcastEvery"`
	SimulateDropProb float64 `json:"simulateDropProb"`
}

// DefaultRoomConfig 默认：每帧最多 16 条输入，每 2 帧广播一次（30Hz）
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{MaxInputsPerTick: 16, BroadcastEvery: 2}
}

// Deps 房间依赖的外部协作方
type Deps struct {
	Advisor advisor.Provider
	Scores  store.Store
	Seed    int64 // 0 表示按时间取种子
}

type leaveRequest struct {
	pid  PilotID
	conn Sender
}

type outbound struct {
	t       string
	payload any
}

// Room 房间世界：一局权威会话维护在内存，单线程 Tick 推进
type Room struct {
	ID string

	session *game.Session
	pilots  map[PilotID]*Pilot
	order   []PilotID // 加入顺序，驾驶者离开时按此顺序接替
	driver  PilotID

	joinChan   chan *Pilot
	inputChan  chan Input
	leaveChan  chan leaveRequest
	adviceChan chan string
	quit       chan struct{}
	joinMu     sync.Mutex // 串行化 RequestJoin 与房间关闭
	closing    bool
	stopOnce   sync.Once
	ctx        context.Context
	cancel     context.CancelFunc

	cfgMu sync.RWMutex
	cfg   RoomConfig
	tick  RoomConfig // 本帧使用的配置副本

	tickSeq        int64
	inputsThisTick int
	departed       bool // 本帧有连接离开，帧末检查是否已空
	sfx            []string
	outbox         []outbound

	advisor advisor.Provider
	scores  store.Store
	metrics *RoomMetrics
	rng     *rand.Rand

	tickerStarted bool

	// OnEmpty 最后一个连接离开时在 Tick 线程中调用；可能因有新的加入而不关闭
	OnEmpty func(id string)
}

// NewRoom 创建房间，初始化数据结构
func NewRoom(id string, deps Deps) *Room {
	seed := deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if deps.Advisor == nil {
		deps.Advisor = advisor.Static{}
	}
	if deps.Scores == nil {
		deps.Scores = store.NewMemory(0)
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Room{
		ID:         id,
		pilots:     make(map[PilotID]*Pilot),
		joinChan:   make(chan *Pilot, 16),
		inputChan:  make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		leaveChan:  make(chan leaveRequest, 64),
		adviceChan: make(chan string, 4),
		quit:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		cfg:        DefaultRoomConfig(),
		tick:       DefaultRoomConfig(),
		advisor:    deps.Advisor,
		scores:     deps.Scores,
		metrics:    &RoomMetrics{},
		rng:        rand.New(rand.NewSource(seed)),
	}
	r.session = game.NewSession(rand.New(rand.NewSource(seed+1)), roomAudio{r}, roomEvents{r})
	return r
}

// Config 当前配置副本
func (r *Room) Config() RoomConfig {
	r.cfgMu.RLock()
	defer r.cfgMu.RUnlock()
	return r.cfg
}

// UpdateConfig 在锁内修改配置，下一帧生效
func (r *Room) UpdateConfig(fn func(*RoomConfig)) RoomConfig {
	r.cfgMu.Lock()
	defer r.cfgMu.Unlock()
	fn(&r.cfg)
	return r.cfg
}

// Metrics 运行指标
func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// RequestJoin 请求在 Tick 线程中加入连接
func (r *Room) RequestJoin(p *Pilot) error {
	r.joinMu.Lock()
	defer r.joinMu.Unlock()
	if r.closing {
		return ErrRoomClosed
	}
	select {
	case r.joinChan <- p:
		return nil
	case <-r.quit:
		return ErrRoomClosed
	}
}

// closeForJoins 房间无人且没有排队中的加入时，拒绝之后的 RequestJoin
// 有 RequestJoin 正在进行时直接返回 false，不与其争锁
func (r *Room) closeForJoins() bool {
	if !r.joinMu.TryLock() {
		return false
	}
	defer r.joinMu.Unlock()
	if len(r.pilots) > 0 || len(r.joinChan) > 0 {
		return false
	}
	r.closing = true
	return true
}

// OnInput 入站输入（不立即生效），等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	// 不阻塞：输入拥塞时直接丢弃，保证 Tick 准时
	select {
	case r.inputChan <- in:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// RequestLeave 请求在 Tick 线程中移除连接，避免并发改动房间状态
// conn 用于区分同名重连：旧连接的离开请求不会踢掉新连接
func (r *Room) RequestLeave(pid PilotID, conn Sender) {
	select {
	case r.leaveChan <- leaveRequest{pid: pid, conn: conn}:
	case <-r.quit:
	}
}

// BeginTick 同一 Tick 时间线：重置帧内计数，固定本帧配置
func (r *Room) BeginTick() {
	r.tickSeq++
	r.inputsThisTick = 0
	r.tick = r.Config()
}

// ProcessInputs 处理当前帧的所有排队事件（非阻塞 drain）
// 先处理加入/离开，再处理输入，保证连接在其输入之前已登记
func (r *Room) ProcessInputs() {
	r.drainMembership()
	for {
		select {
		case in := <-r.inputChan:
			r.applyInput(in)
		case text := <-r.adviceChan:
			logger.Log.Infof("room=%s advice: %s", r.ID, text)
			r.queue(protocol.MsgAdvice, protocol.Advice{Text: text})
		default:
			if r.departed && len(r.pilots) == 0 && r.OnEmpty != nil {
				r.OnEmpty(r.ID)
			}
			r.departed = false
			return
		}
	}
}

// drainMembership 处理排队的加入与离开
func (r *Room) drainMembership() {
	for {
		select {
		case p := <-r.joinChan:
			r.join(p)
		case req := <-r.leaveChan:
			if p, ok := r.pilots[req.pid]; ok && p.Conn == req.conn {
				r.leave(req.pid)
				r.departed = true
			}
		default:
			return
		}
	}
}

// UpdateWorld 推进一帧模拟；非 Playing 状态下会话自身不做修改
func (r *Room) UpdateWorld() {
	r.session.Tick()
}

// Broadcast 先发出排队的事件消息，再按频率广播状态
func (r *Room) Broadcast() {
	for _, m := range r.outbox {
		r.sendAll(m.t, m.payload)
	}
	r.outbox = r.outbox[:0]

	every := int64(max(r.tick.BroadcastEvery, 1))
	if r.tickSeq%every != 0 {
		return
	}
	state := protocol.BuildState(r.session, r.scores.Best(), r.sfx)
	r.sendAll(protocol.MsgState, state)
	r.sfx = nil
}

// step 完整的一帧：输入 → 世界 → 广播
func (r *Room) step() {
	r.BeginTick()
	r.ProcessInputs()
	r.UpdateWorld()
	r.Broadcast()
}

func (r *Room) join(p *Pilot) {
	if _, ok := r.pilots[p.ID]; ok {
		// 同名重连：关闭旧连接
		r.leave(p.ID)
	}
	p.Spectator = r.driver != ""
	if !p.Spectator {
		r.driver = p.ID
	}
	r.pilots[p.ID] = p
	r.order = append(r.order, p.ID)
	logger.Log.Infof("room=%s pilot=%s joined spectator=%v codec=%s", r.ID, p.ID, p.Spectator, p.Codec.Name())

	r.welcome(p)
	p.send(protocol.MsgState, protocol.BuildState(r.session, r.scores.Best(), nil))
}

func (r *Room) leave(pid PilotID) {
	p, ok := r.pilots[pid]
	if !ok {
		return
	}
	if p.Conn != nil {
		p.Conn.Close()
	}
	delete(r.pilots, pid)
	for i, id := range r.order {
		if id == pid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	logger.Log.Infof("room=%s pilot=%s left", r.ID, pid)

	if r.driver != pid {
		return
	}
	r.driver = ""
	r.session.Input.Reset()
	if len(r.order) > 0 {
		next := r.pilots[r.order[0]]
		next.Spectator = false
		r.driver = next.ID
		r.welcome(next)
		logger.Log.Infof("room=%s pilot=%s takes control", r.ID, next.ID)
	}
}

// welcome 告知连接自己的身份；接替驾驶时会再发一次
func (r *Room) welcome(p *Pilot) {
	p.send(protocol.MsgWelcome, protocol.Welcome{
		PilotID:   string(p.ID),
		Room:      r.ID,
		Spectator: p.Spectator,
		TickHz:    TicksPerSecond,
		Width:     int(game.Width),
		Height:    int(game.Height),
		HighScore: r.scores.Best(),
	})
}

// applyInput 只接受驾驶者的输入，依次做去重、限流、模拟丢包
func (r *Room) applyInput(in Input) {
	p, ok := r.pilots[in.PilotID]
	if !ok {
		// 加入在本帧成员阶段之后才入队，输入却已到达
		r.drainMembership()
		p, ok = r.pilots[in.PilotID]
	}
	if !ok || in.PilotID != r.driver {
		r.metrics.IncUnroutable()
		return
	}
	if in.Seq > 0 {
		if in.Seq <= p.lastSeq {
			r.metrics.IncOldSeqIgnored()
			return
		}
		p.lastSeq = in.Seq
	}
	if r.inputsThisTick >= r.tick.MaxInputsPerTick {
		r.metrics.IncRateLimited()
		return
	}
	if r.tick.SimulateDropProb > 0 && r.rng.Float64() < r.tick.SimulateDropProb {
		r.metrics.IncDropsSimulated()
		return
	}
	r.inputsThisTick++
	r.metrics.IncAccepted()

	var err error
	switch in.Kind {
	case InputKey:
		r.session.Input.SetKey(in.Key, in.Down)
	case InputStart, InputRestart:
		err = r.session.Start()
	case InputNext:
		err = r.session.NextLevel()
	}
	if err != nil {
		logger.Log.Debugf("room=%s pilot=%s input ignored: %v", r.ID, in.PilotID, err)
	}
}

func (r *Room) queue(t string, payload any) {
	r.outbox = append(r.outbox, outbound{t: t, payload: payload})
}

// sendAll 每种编码只序列化一次
func (r *Room) sendAll(t string, payload any) {
	encoded := make(map[string][]byte, 2)
	for _, p := range r.pilots {
		b, ok := encoded[p.Codec.Name()]
		if !ok {
			var err error
			b, err = protocol.Encode(p.Codec, t, payload)
			if err != nil {
				logger.Log.Errorf("room=%s encode %s: %v", r.ID, t, err)
				return
			}
			encoded[p.Codec.Name()] = b
		}
		p.Conn.Enqueue(b)
	}
}
