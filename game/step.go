package game

// Tick 推进一帧；非 Playing 状态下不做任何修改
func (s *Session) Tick() {
	if s.Phase != PhasePlaying {
		return
	}
	s.tick++
	s.clock += FrameDuration

	s.applyInput()
	s.advanceFormation()
	for i := range s.Enemies {
		if s.Enemies[i].Active {
			s.updateEnemy(&s.Enemies[i])
		}
	}
	s.updateBullets()
	s.Bullets = compactBullets(s.Bullets)

	if s.Phase == PhasePlaying && s.ActiveEnemies() == 0 {
		s.completeLevel()
	}

	s.updateParticles()
}

// applyInput 移动并裁剪到 [PlayerMargin, Width-PlayerMargin]；开火受冷却限制
func (s *Session) applyInput() {
	if s.Input.Left() {
		s.Player.Pos[0] = max(PlayerMargin, s.Player.Pos.X()-PlayerSpeed)
	}
	if s.Input.Right() {
		s.Player.Pos[0] = min(Width-PlayerMargin, s.Player.Pos.X()+PlayerSpeed)
	}
	if s.Input.Fire() && s.clock-s.lastShot >= s.Tuning.FireCooldown {
		s.spawnPlayerBullet()
		s.Stats.ShotsFired++
		s.lastShot = s.clock
		s.audio.Shoot()
	}
}

// updateBullets 积分位置，出界失活，然后做碰撞
func (s *Session) updateBullets() {
	for i := range s.Bullets {
		b := &s.Bullets[i]
		if !b.Active {
			continue
		}
		b.Pos = b.Pos.Add(b.Vel)
		if b.Pos.Y() < 0 || b.Pos.Y() > Height {
			b.Active = false
			continue
		}
		s.resolveBullet(b)
	}
}

func (s *Session) updateParticles() {
	n := 0
	for i := range s.Particles {
		p := s.Particles[i]
		p.Pos = p.Pos.Add(p.Vel)
		p.Life -= ParticleDecay
		if p.Life > 0 {
			s.Particles[n] = p
			n++
		}
	}
	s.Particles = s.Particles[:n]
}

// compactBullets 原地压缩，只保留存活子弹
func compactBullets(bs []Bullet) []Bullet {
	n := 0
	for i := range bs {
		if bs[i].Active {
			bs[n] = bs[i]
			n++
		}
	}
	return bs[:n]
}
