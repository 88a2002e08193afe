package game

import "math"

// advanceFormation 编队偏移在 ±FormationBound 之间往返
func (s *Session) advanceFormation() {
	s.formationOffset += s.formationDir * FormationSpeed(s.Level)
	switch {
	case s.formationOffset >= FormationBound:
		s.formationOffset = FormationBound
		s.formationDir = -1
	case s.formationOffset <= -FormationBound:
		s.formationOffset = -FormationBound
		s.formationDir = 1
	}
}

// bob 所有编队敌机共享的上下浮动，相位取自模拟时钟
func (s *Session) bob() float64 {
	return math.Sin(s.clock.Seconds()) * BobAmplitude
}

// updateEnemy 单个存活敌机的状态机：编队 ↔ 俯冲
func (s *Session) updateEnemy(e *Enemy) {
	if !e.Diving {
		e.Pos = V(e.Origin.X()+s.formationOffset, e.Origin.Y()+s.bob())
		if s.rng.Float64() < s.Tuning.DiveChance(s.Level) {
			e.Diving = true
			e.DivePhase = 0
		}
		return
	}

	e.DivePhase += DivePhaseStep
	e.Pos[1] += DiveSpeed(s.Level)
	e.Pos[0] += math.Sin(e.DivePhase*DiveWeaveFreq) * DiveWeaveAmp

	if s.rng.Float64() < s.Tuning.EnemyFireChance {
		s.spawnEnemyBullet(e.Pos)
	}

	// 从底部冲出后回到顶部并恢复编队，不算击毁
	if e.Pos.Y() > Height {
		e.Pos[1] = DiveRespawnY
		e.Diving = false
	}

	if s.Player.Lives > 0 && distance(e.Pos, s.Player.Pos) < DiverHitRadius {
		e.Active = false
		s.explode(s.Player.Pos, ColorPlayer)
		s.damagePlayer()
	}
}
