package game

// resolveBullet 单颗子弹的碰撞判定；先命中者生效，已失活的目标不会重复结算
func (s *Session) resolveBullet(b *Bullet) {
	if !b.Active {
		return
	}
	if b.FromPlayer {
		for i := range s.Enemies {
			e := &s.Enemies[i]
			if !e.Active {
				continue
			}
			if distance(b.Pos, e.Pos) < BulletHitRadius {
				e.Active = false
				b.Active = false
				s.Stats.Score += e.Type.Points()
				s.Stats.Hits++
				s.explode(e.Pos, e.Color)
				return
			}
		}
		return
	}

	if s.Player.Lives > 0 && distance(b.Pos, s.Player.Pos) < EnemyBulletHitRadius {
		b.Active = false
		s.explode(s.Player.Pos, ColorPlayer)
		s.damagePlayer()
	}
}

// explode 生成一簇爆炸粒子
func (s *Session) explode(at Vec2, color string) {
	s.audio.Explosion()
	for i := 0; i < ExplosionParticles; i++ {
		s.Particles = append(s.Particles, Particle{
			Pos:     at,
			Vel:     V((s.rng.Float64()-0.5)*ParticleSpread, (s.rng.Float64()-0.5)*ParticleSpread),
			Life:    1,
			MaxLife: 0.5 + s.rng.Float64()*0.5,
			Color:   color,
		})
	}
}

func (s *Session) spawnEnemyBullet(from Vec2) {
	s.nextBulletID++
	s.Bullets = append(s.Bullets, Bullet{
		ID:     s.nextBulletID,
		Pos:    V(from.X(), from.Y()+EnemyMuzzleOffset),
		Vel:    V(0, EnemyBulletSpeed+float64(s.Level)*EnemyBulletLevelGain),
		Active: true,
	})
}

func (s *Session) spawnPlayerBullet() {
	s.nextBulletID++
	s.Bullets = append(s.Bullets, Bullet{
		ID:         s.nextBulletID,
		Pos:        V(s.Player.Pos.X(), s.Player.Pos.Y()-PlayerMuzzleOffset),
		Vel:        V(0, -BulletSpeed),
		FromPlayer: true,
		Active:     true,
	})
}
