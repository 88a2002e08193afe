package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"vanguard/advisor"
	"vanguard/game"
)

var (
	styleHUD   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle = tcell.StyleDefault.Foreground(tcell.GetColor(game.ColorPlayer)).Bold(true)
	styleInfo  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

var enemyGlyph = map[game.EnemyType]rune{
	game.Drone:     'v',
	game.Stinger:   'V',
	game.Commander: 'W',
}

// cell 逻辑坐标映射到终端格子
func cell(p game.Vec2, w, h int) (int, int) {
	return int(p.X() / game.Width * float64(w)), int(p.Y() / game.Height * float64(h))
}

func put(s tcell.Screen, x, y int, r rune, st tcell.Style) {
	w, h := s.Size()
	if x < 0 || y < 1 || x >= w || y >= h {
		return
	}
	s.SetContent(x, y, r, nil, st)
}

func text(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, st)
	}
}

func centered(s tcell.Screen, y int, str string, st tcell.Style) {
	w, _ := s.Size()
	text(s, (w-len([]rune(str)))/2, y, str, st)
}

func (a *app) draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	sess := a.session

	for _, p := range sess.Particles {
		x, y := cell(p.Pos, w, h)
		glyph := '.'
		if p.Life > 0.5 {
			glyph = '*'
		}
		put(s, x, y, glyph, tcell.StyleDefault.Foreground(tcell.GetColor(p.Color)))
	}
	for _, e := range sess.Enemies {
		if !e.Active {
			continue
		}
		x, y := cell(e.Pos, w, h)
		put(s, x, y, enemyGlyph[e.Type], tcell.StyleDefault.Foreground(tcell.GetColor(e.Color)))
	}
	for _, b := range sess.Bullets {
		x, y := cell(b.Pos, w, h)
		if b.FromPlayer {
			put(s, x, y, '|', tcell.StyleDefault.Foreground(tcell.GetColor(game.ColorPlayerBullet)))
		} else {
			put(s, x, y, '!', tcell.StyleDefault.Foreground(tcell.GetColor(game.ColorEnemyBullet)))
		}
	}
	if sess.Player.Lives > 0 {
		x, y := cell(sess.Player.Pos, w, h)
		put(s, x, y, '^', styleTitle)
	}

	st := sess.Snapshot()
	text(s, 0, 0, fmt.Sprintf("SCORE: %d", st.Score), styleHUD)
	centered(s, 0, fmt.Sprintf("LEVEL: %d", st.Level), styleHUD)
	lives := fmt.Sprintf("LIVES: %d", st.Lives)
	text(s, w-len(lives), 0, lives, styleHUD)

	mid := h / 2
	switch sess.Phase {
	case game.PhaseMenu:
		centered(s, mid-3, "GALAXIAN", styleTitle)
		centered(s, mid-2, "VANGUARD", styleTitle)
		centered(s, mid, fmt.Sprintf("HIGH SCORE: %d", a.scores.Best()), styleInfo)
		centered(s, mid+1, "ARROWS OR A/D TO MOVE, SPACE TO FIRE", styleHUD)
		centered(s, mid+3, "[ENTER] LAUNCH INTERCEPTOR", styleHUD)
	case game.PhaseLevelTransition:
		centered(s, mid-2, "WAVE CLEARED", styleTitle)
		advice := "ANALYZING COMBAT DATA..."
		if !a.loadingAdvice {
			advice = fmt.Sprintf("%q", a.advice)
		}
		centered(s, mid, advice, styleInfo)
		centered(s, mid+1, fmt.Sprintf("ACCURACY: %d%%", advisor.AccuracyPercent(st)), styleHUD)
		centered(s, mid+3, "[N] NEXT SECTOR", styleHUD)
	case game.PhaseGameOver:
		centered(s, mid-2, "LOST", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		centered(s, mid, fmt.Sprintf("FINAL SCORE: %d", a.lastScore), styleHUD)
		hs := fmt.Sprintf("HIGH SCORE: %d", a.scores.Best())
		if a.newRecord {
			hs += "  NEW RECORD"
		}
		centered(s, mid+1, hs, styleInfo)
		centered(s, mid+3, "[ENTER/R] REDEPLOY PILOT", styleHUD)
	}

	s.Show()
}
