package store

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/df-mc/goleveldb/leveldb"

	"vanguard/logger"
)

// LevelDB 基于 goleveldb 的最高分存储，值为十进制字符串
type LevelDB struct {
	mu   sync.Mutex
	db   *leveldb.DB
	best int
}

// OpenLevelDB 打开（或创建）数据库并读取一次最高分
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open highscore db %s: %w", path, err)
	}
	s := &LevelDB{db: db}

	raw, err := db.Get([]byte(Key), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
	case err != nil:
		logger.Log.Warnf("read highscore: %v; defaulting to 0", err)
	default:
		s.best = parseScore(raw)
	}
	return s, nil
}

func (s *LevelDB) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

func (s *LevelDB) Submit(score int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score <= s.best {
		return false, nil
	}
	if err := s.db.Put([]byte(Key), []byte(strconv.Itoa(score)), nil); err != nil {
		return false, fmt.Errorf("write highscore: %w", err)
	}
	s.best = score
	return true, nil
}

func (s *LevelDB) Close() error {
	return s.db.Close()
}
