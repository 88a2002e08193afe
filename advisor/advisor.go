package advisor

import (
	"context"
	"fmt"
	"math"

	"vanguard/game"
)

// 兜底文案：调用失败或返回为空时使用，永远不向玩家暴露错误
const (
	FallbackEmpty = "STAY VIGILANT, PILOT. THE SWARM APPROACHES."
	FallbackError = "GOOD LUCK, STARFIGHTER."
	Standby       = "SYSTEMS ONLINE. PREPARE FOR DEPLOYMENT."
)

// Provider 关卡间战术提示；实现方自行处理超时与失败
type Provider interface {
	Advise(ctx context.Context, stats game.Stats) string
}

// Static 固定文案，未配置 API key 时使用
type Static struct {
	Text string
}

func (s Static) Advise(context.Context, game.Stats) string {
	if s.Text == "" {
		return FallbackEmpty
	}
	return s.Text
}

// AccuracyPercent 命中率百分比（四舍五入），未开火按 1 发计
func AccuracyPercent(st game.Stats) int {
	shots := st.ShotsFired
	if shots == 0 {
		shots = 1
	}
	return int(math.Round(float64(st.Hits) / float64(shots) * 100))
}

// Prompt 生成提示词
func Prompt(st game.Stats) string {
	return fmt.Sprintf(`System: You are 'Vanguard Control', a sarcastic but supportive tactical AI in a retro space shooter.
The player's current stats:
Score: %d
Level: %d
Lives Left: %d
Accuracy: %d%%

Provide a brief (max 20 words) tactical update or taunt for the next wave. Be punchy and retro-styled.`,
		st.Score, st.Level, st.Lives, AccuracyPercent(st))
}
