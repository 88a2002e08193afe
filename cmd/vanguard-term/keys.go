package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"vanguard/game"
)

// holdWindow 终端没有抬键事件：按键在最后一次按下/自动重复后的这段时间内视为按住
const holdWindow = 200 * time.Millisecond

// heldKeys 记录每个键最后一次按下的时间
type heldKeys struct {
	last map[string]time.Time
}

func newHeldKeys() *heldKeys {
	return &heldKeys{last: make(map[string]time.Time)}
}

func (h *heldKeys) press(key string, at time.Time) {
	h.last[key] = at
}

// apply 把当前按住状态写入会话输入表
func (h *heldKeys) apply(in *game.Input, now time.Time) {
	for key, at := range h.last {
		in.SetKey(key, now.Sub(at) < holdWindow)
	}
}

func (h *heldKeys) reset() {
	clear(h.last)
}

// keyName 将 tcell 按键映射为浏览器风格的键名；无关按键返回空串
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.KeyArrowLeft
	case tcell.KeyRight:
		return game.KeyArrowRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return game.KeySpace
		case 'a', 'A':
			return "a"
		case 'd', 'D':
			return "d"
		}
	}
	return ""
}
