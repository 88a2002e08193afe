package server

import (
	"sync/atomic"
)

// RoomMetrics 房间运行期计数器，全部为原子值，HTTP 线程可并发读取
type RoomMetrics struct {
	ticks      atomic.Int64
	tickNanos  atomic.Int64
	accepted   atomic.Int64
	rateLimit  atomic.Int64 // 同帧超出配额
	staleSeq   atomic.Int64
	dropped    atomic.Int64 // 模拟丢包
	chanFull   atomic.Int64
	unroutable atomic.Int64 // 来自未登记连接或观战者
	badFrames  atomic.Int64
	cleared    atomic.Int64
	gamesEnded atomic.Int64
}

func (m *RoomMetrics) IncAccepted()          { m.accepted.Add(1) }
func (m *RoomMetrics) IncRateLimited()       { m.rateLimit.Add(1) }
func (m *RoomMetrics) IncOldSeqIgnored()     { m.staleSeq.Add(1) }
func (m *RoomMetrics) IncDropsSimulated()    { m.dropped.Add(1) }
func (m *RoomMetrics) IncChanFullDiscarded() { m.chanFull.Add(1) }
func (m *RoomMetrics) IncUnroutable()        { m.unroutable.Add(1) }
func (m *RoomMetrics) IncDecodeErrors()      { m.badFrames.Add(1) }
func (m *RoomMetrics) IncLevelsCleared()     { m.cleared.Add(1) }
func (m *RoomMetrics) IncGamesOver()         { m.gamesEnded.Add(1) }

// AddTick 记一次 tick 及其耗时
func (m *RoomMetrics) AddTick(ns int64) {
	m.ticks.Add(1)
	m.tickNanos.Add(ns)
}

// Snapshot 导出为 map，键名即 /metrics 的 JSON 字段
func (m *RoomMetrics) Snapshot() map[string]any {
	snap := map[string]any{
		"tick_count":          m.ticks.Load(),
		"inputs_accepted":     m.accepted.Load(),
		"rate_limited":        m.rateLimit.Load(),
		"old_seq_ignored":     m.staleSeq.Load(),
		"drops_simulated":     m.dropped.Load(),
		"chan_full_discarded": m.chanFull.Load(),
		"inputs_unroutable":   m.unroutable.Load(),
		"decode_errors":       m.badFrames.Load(),
		"levels_cleared":      m.cleared.Load(),
		"games_over":          m.gamesEnded.Load(),
	}
	avg := 0.0
	if n := snap["tick_count"].(int64); n > 0 {
		avg = float64(m.tickNanos.Load()) / float64(n) / 1e6
	}
	snap["avg_tick_ms"] = avg
	return snap
}
