package game

// 按键名沿用浏览器 KeyboardEvent.key
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeySpace      = " "
)

// Input 当前帧的按键状态表，无缓冲，只看此刻是否按下
type Input struct {
	keys map[string]bool
}

// SetKey 记录一次按下/抬起
func (in *Input) SetKey(key string, down bool) {
	if in.keys == nil {
		in.keys = make(map[string]bool)
	}
	in.keys[key] = down
}

// Reset 松开所有按键
func (in *Input) Reset() {
	clear(in.keys)
}

func (in *Input) held(keys ...string) bool {
	for _, k := range keys {
		if in.keys[k] {
			return true
		}
	}
	return false
}

// Left 左移（方向键或 A）
func (in *Input) Left() bool { return in.held(KeyArrowLeft, "a", "A") }

// Right 右移（方向键或 D）
func (in *Input) Right() bool { return in.held(KeyArrowRight, "d", "D") }

// Fire 开火（空格）
func (in *Input) Fire() bool { return in.held(KeySpace) }
