package game

import (
	"math/rand"
	"time"
)

// recorder 记录所有协作方回调
type recorder struct {
	shots      []time.Duration
	explosions int
	playerHits int
	levelUps   int
	completed  []Stats
	gameOvers  []Stats

	s *Session
}

func (r *recorder) Shoot() {
	if r.s != nil {
		r.shots = append(r.shots, r.s.Clock())
	}
}
func (r *recorder) Explosion()             { r.explosions++ }
func (r *recorder) PlayerHit()             { r.playerHits++ }
func (r *recorder) LevelUp()               { r.levelUps++ }
func (r *recorder) LevelComplete(st Stats) { r.completed = append(r.completed, st) }
func (r *recorder) GameOver(st Stats)      { r.gameOvers = append(r.gameOvers, st) }

// newTestSession 固定种子，关闭俯冲与敌方开火，便于构造确定场景
func newTestSession(seed int64) (*Session, *recorder) {
	rec := &recorder{}
	s := NewSession(rand.New(rand.NewSource(seed)), rec, rec)
	rec.s = s
	s.Tuning.DiveChanceBase = 0
	s.Tuning.EnemyFireChance = 0
	return s, rec
}
