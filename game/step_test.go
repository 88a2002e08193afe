package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStaysWithinBounds(t *testing.T) {
	s, _ := newTestSession(10)
	require.NoError(t, s.Start())

	s.Input.SetKey(KeyArrowLeft, true)
	for i := 0; i < 200; i++ {
		s.Tick()
		x := s.Player.Pos.X()
		require.GreaterOrEqual(t, x, PlayerMargin)
		require.LessOrEqual(t, x, Width-PlayerMargin)
	}
	assert.Equal(t, PlayerMargin, s.Player.Pos.X())

	s.Input.SetKey(KeyArrowLeft, false)
	s.Input.SetKey("d", true)
	for i := 0; i < 200; i++ {
		s.Tick()
		x := s.Player.Pos.X()
		require.GreaterOrEqual(t, x, PlayerMargin)
		require.LessOrEqual(t, x, Width-PlayerMargin)
	}
	assert.Equal(t, Width-PlayerMargin, s.Player.Pos.X())
}

func TestFireIsRateLimited(t *testing.T) {
	s, rec := newTestSession(11)
	require.NoError(t, s.Start())
	// 玩家移到最左侧，子弹打不到任何敌机，避免提前清关
	s.Player.Pos[0] = PlayerMargin
	s.Input.SetKey(KeySpace, true)

	for i := 0; i < 600; i++ {
		s.Tick()
	}
	require.NotEmpty(t, rec.shots)
	assert.Equal(t, len(rec.shots), s.Stats.ShotsFired)
	for i := 1; i < len(rec.shots); i++ {
		assert.GreaterOrEqual(t, rec.shots[i]-rec.shots[i-1], s.Tuning.FireCooldown)
	}
	// 600 帧 = 10 秒，冷却 300ms 下至少能打出 30 发
	assert.GreaterOrEqual(t, len(rec.shots), 30)
}

func TestBulletsLeavingPlayfieldAreCompacted(t *testing.T) {
	s, _ := newTestSession(12)
	require.NoError(t, s.Start())
	s.Bullets = append(s.Bullets,
		Bullet{ID: 1, Pos: V(5, 3), Vel: V(0, -10), FromPlayer: true, Active: true},
		Bullet{ID: 2, Pos: V(5, Height-1), Vel: V(0, 5), Active: true},
		Bullet{ID: 3, Pos: V(5, 500), Vel: V(0, 5), Active: true},
	)
	s.Tick()
	require.Len(t, s.Bullets, 1)
	assert.Equal(t, uint64(3), s.Bullets[0].ID)
	assert.Equal(t, 505.0, s.Bullets[0].Pos.Y())
}

func TestParticlesDecayAndArePruned(t *testing.T) {
	s, _ := newTestSession(13)
	require.NoError(t, s.Start())
	s.explode(V(100, 100), ColorPlayer)
	require.Len(t, s.Particles, ExplosionParticles)
	for _, p := range s.Particles {
		assert.Equal(t, 1.0, p.Life)
		assert.GreaterOrEqual(t, p.MaxLife, 0.5)
		assert.Less(t, p.MaxLife, 1.0)
		assert.LessOrEqual(t, math.Abs(p.Vel.X()), ParticleSpread/2)
	}
	for i := 0; i < 49; i++ {
		s.Tick()
	}
	assert.Len(t, s.Particles, ExplosionParticles)
	s.Tick()
	s.Tick()
	assert.Empty(t, s.Particles)
}

func TestLevelCompleteFiresOnceWithExactSnapshot(t *testing.T) {
	s, rec := newTestSession(14)
	require.NoError(t, s.Start())
	for i := 1; i < len(s.Enemies); i++ {
		s.Enemies[i].Active = false
	}
	s.Stats.Score = 1234
	s.Stats.Hits = 7
	s.Stats.ShotsFired = 9

	last := s.Enemies[0]
	s.Bullets = append(s.Bullets, Bullet{Pos: V(last.Pos.X(), last.Pos.Y()+10), Vel: V(0, -BulletSpeed), FromPlayer: true, Active: true})
	s.Tick()

	require.Len(t, rec.completed, 1)
	assert.Equal(t, Stats{Score: 1234 + Commander.Points(), Hits: 8, ShotsFired: 9, Lives: StartingLives, Level: 1}, rec.completed[0])
	assert.Equal(t, PhaseLevelTransition, s.Phase)

	for i := 0; i < 10; i++ {
		s.Tick()
	}
	assert.Len(t, rec.completed, 1)
}

func TestGameOverFiresWhenLastLifeLost(t *testing.T) {
	s, rec := newTestSession(15)
	require.NoError(t, s.Start())
	s.Stats.Score = 900

	s.Player.Lives = 2
	s.Bullets = append(s.Bullets, Bullet{Pos: V(s.Player.Pos.X(), s.Player.Pos.Y()-5), Vel: V(0, 5), Active: true})
	s.Tick()
	assert.Equal(t, 1, s.Player.Lives)
	assert.Empty(t, rec.gameOvers)
	assert.Equal(t, PhasePlaying, s.Phase)

	// 同一帧两颗子弹：第二颗不应把生命扣成负数
	for i := 0; i < 2; i++ {
		s.Bullets = append(s.Bullets, Bullet{Pos: V(s.Player.Pos.X(), s.Player.Pos.Y()-5), Vel: V(0, 5), Active: true})
	}
	s.Tick()
	assert.Equal(t, 0, s.Player.Lives)
	require.Len(t, rec.gameOvers, 1)
	assert.Equal(t, 900, rec.gameOvers[0].Score)
	assert.Equal(t, 0, rec.gameOvers[0].Lives)
	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.Equal(t, 2, rec.playerHits)
	assert.Empty(t, rec.completed)

	s.Tick()
	assert.Len(t, rec.gameOvers, 1)
	assert.Equal(t, 0, s.Player.Lives)
}

// 简单自动瞄准：始终追最低一排的存活敌机并按住开火
func TestClearLevelOneEndToEnd(t *testing.T) {
	s, rec := newTestSession(16)
	require.NoError(t, s.Start())
	require.Len(t, s.Enemies, 40)
	s.Input.SetKey(KeySpace, true)

	const maxFrames = 30000
	frames := 0
	for ; frames < maxFrames && s.Phase == PhasePlaying; frames++ {
		target := -1
		for i := range s.Enemies {
			if !s.Enemies[i].Active {
				continue
			}
			if target < 0 || s.Enemies[i].Pos.Y() > s.Enemies[target].Pos.Y() {
				target = i
			}
		}
		if target >= 0 {
			dx := s.Enemies[target].Pos.X() - s.Player.Pos.X()
			s.Input.SetKey(KeyArrowLeft, dx < -3)
			s.Input.SetKey(KeyArrowRight, dx > 3)
		}
		s.Tick()
	}

	require.Less(t, frames, maxFrames)
	require.Len(t, rec.completed, 1)
	st := rec.completed[0]
	assert.Equal(t, 40, st.Hits)
	assert.GreaterOrEqual(t, st.ShotsFired, st.Hits)
	assert.Equal(t, 8*200+16*100+16*50, st.Score)
	assert.Equal(t, StartingLives, st.Lives)
	assert.Empty(t, rec.gameOvers)
}
