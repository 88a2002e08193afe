package store

import (
	"strconv"
	"strings"
	"sync"
)

// Key 最高分在存储中的键名
const Key = "galaxian-highscore"

// Store 持久化最高分：启动时读一次，每局结束时按需写
type Store interface {
	// Best 当前已知最高分
	Best() int
	// Submit 分数超过记录时写入并返回 true
	Submit(score int) (bool, error)
	Close() error
}

// parseScore 缺失或格式错误都视为 0
func parseScore(raw []byte) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Memory 进程内实现，用于测试与无盘运行
type Memory struct {
	mu   sync.Mutex
	best int
}

func NewMemory(initial int) *Memory { return &Memory{best: max(initial, 0)} }

func (m *Memory) Best() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best
}

func (m *Memory) Submit(score int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score <= m.best {
		return false, nil
	}
	m.best = score
	return true, nil
}

func (m *Memory) Close() error { return nil }
