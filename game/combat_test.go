package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoBulletsSameEnemyScoreOnce(t *testing.T) {
	s, rec := newTestSession(30)
	require.NoError(t, s.Start())
	target := s.Enemies[len(s.Enemies)-1]

	for i := 0; i < 2; i++ {
		s.Bullets = append(s.Bullets, Bullet{
			ID:         uint64(100 + i),
			Pos:        V(target.Pos.X(), target.Pos.Y()+BulletSpeed),
			Vel:        V(0, -BulletSpeed),
			FromPlayer: true,
			Active:     true,
		})
	}
	s.updateBullets()

	assert.Equal(t, target.Type.Points(), s.Stats.Score)
	assert.Equal(t, 1, s.Stats.Hits)
	assert.Equal(t, len(s.Enemies)-1, s.ActiveEnemies())
	assert.False(t, s.Bullets[0].Active)
	assert.True(t, s.Bullets[1].Active)
	assert.Equal(t, 1, rec.explosions)

	s.Bullets = compactBullets(s.Bullets)
	require.Len(t, s.Bullets, 1)
	assert.Equal(t, uint64(101), s.Bullets[0].ID)
}

func TestBulletStopsAtFirstEnemy(t *testing.T) {
	s, _ := newTestSession(31)
	require.NoError(t, s.Start())
	// 两个敌机叠在一起，一颗子弹只能打掉一个
	s.Enemies[1].Pos = s.Enemies[0].Pos
	s.Bullets = append(s.Bullets, Bullet{Pos: s.Enemies[0].Pos, FromPlayer: true, Active: true})

	s.resolveBullet(&s.Bullets[0])
	assert.False(t, s.Enemies[0].Active)
	assert.True(t, s.Enemies[1].Active)
	assert.Equal(t, Commander.Points(), s.Stats.Score)
}

func TestHitRadiiAreStrict(t *testing.T) {
	s, _ := newTestSession(32)
	require.NoError(t, s.Start())
	e := s.Enemies[0]

	s.Bullets = append(s.Bullets[:0], Bullet{Pos: V(e.Pos.X()+BulletHitRadius, e.Pos.Y()), FromPlayer: true, Active: true})
	s.resolveBullet(&s.Bullets[0])
	assert.True(t, s.Bullets[0].Active)

	s.Bullets = append(s.Bullets[:0], Bullet{Pos: V(s.Player.Pos.X()+EnemyBulletHitRadius, s.Player.Pos.Y()), Active: true})
	s.resolveBullet(&s.Bullets[0])
	assert.True(t, s.Bullets[0].Active)
	assert.Equal(t, StartingLives, s.Player.Lives)

	s.Bullets = append(s.Bullets[:0], Bullet{Pos: V(s.Player.Pos.X()+EnemyBulletHitRadius-1, s.Player.Pos.Y()), Active: true})
	s.resolveBullet(&s.Bullets[0])
	assert.False(t, s.Bullets[0].Active)
	assert.Equal(t, StartingLives-1, s.Player.Lives)
}

func TestEnemyBulletsIgnoreEnemies(t *testing.T) {
	s, _ := newTestSession(33)
	require.NoError(t, s.Start())
	s.Bullets = append(s.Bullets, Bullet{Pos: s.Enemies[0].Pos, Active: true})
	s.resolveBullet(&s.Bullets[0])
	assert.True(t, s.Enemies[0].Active)
	assert.True(t, s.Bullets[0].Active)
}

func TestExplosionUsesEnemyColor(t *testing.T) {
	s, _ := newTestSession(34)
	require.NoError(t, s.Start())
	e := s.Enemies[len(s.Enemies)-1]
	s.Bullets = append(s.Bullets, Bullet{Pos: e.Pos, FromPlayer: true, Active: true})
	s.resolveBullet(&s.Bullets[0])
	require.Len(t, s.Particles, ExplosionParticles)
	assert.Equal(t, ColorDrone, s.Particles[0].Color)
}
