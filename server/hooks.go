package server

import (
	"vanguard/advisor"
	"vanguard/game"
	"vanguard/logger"
	"vanguard/protocol"
)

// roomAudio 把音效钩子变成下一帧广播中的 sfx 列表，由浏览器播放
type roomAudio struct{ r *Room }

func (a roomAudio) Shoot()     { a.r.sfx = append(a.r.sfx, "shoot") }
func (a roomAudio) Explosion() { a.r.sfx = append(a.r.sfx, "explosion") }
func (a roomAudio) PlayerHit() { a.r.sfx = append(a.r.sfx, "playerHit") }
func (a roomAudio) LevelUp()   { a.r.sfx = append(a.r.sfx, "levelUp") }

// roomEvents 会话终止信号；都在 Tick 线程内被调用
type roomEvents struct{ r *Room }

// LevelComplete 通知客户端并异步拉取战术提示，结果经 adviceChan 回到 Tick 线程
func (e roomEvents) LevelComplete(st game.Stats) {
	r := e.r
	r.metrics.IncLevelsCleared()
	logger.Log.Infof("room=%s level %d cleared score=%d accuracy=%d%%", r.ID, st.Level, st.Score, advisor.AccuracyPercent(st))
	r.queue(protocol.MsgLevelComplete, protocol.LevelComplete{Stats: st, Accuracy: st.Accuracy()})

	go func() {
		text := r.advisor.Advise(r.ctx, st)
		select {
		case r.adviceChan <- text:
		case <-r.quit:
		}
	}()
}

// GameOver 提交最高分并通知客户端
func (e roomEvents) GameOver(st game.Stats) {
	r := e.r
	r.metrics.IncGamesOver()
	record, err := r.scores.Submit(st.Score)
	if err != nil {
		logger.Log.Errorf("room=%s submit highscore: %v", r.ID, err)
	}
	if record {
		logger.Log.Infof("room=%s new high score %d", r.ID, st.Score)
	}
	logger.Log.Infof("room=%s game over score=%d level=%d", r.ID, st.Score, st.Level)
	r.queue(protocol.MsgGameOver, protocol.GameOver{Score: st.Score, HighScore: r.scores.Best(), NewRecord: record})
}
