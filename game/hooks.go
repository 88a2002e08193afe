package game

// Audio 音效协作方：只通知，不返回，不影响模拟状态
type Audio interface {
	Shoot()
	Explosion()
	PlayerHit()
	LevelUp()
}

// Events 关卡/对局终止信号，由 Session 在 Tick 线程内同步调用
type Events interface {
	LevelComplete(stats Stats)
	GameOver(stats Stats)
}

// NopAudio 静音实现
type NopAudio struct{}

func (NopAudio) Shoot()     {}
func (NopAudio) Explosion() {}
func (NopAudio) PlayerHit() {}
func (NopAudio) LevelUp()   {}

// NopEvents 忽略所有信号
type NopEvents struct{}

func (NopEvents) LevelComplete(Stats) {}
func (NopEvents) GameOver(Stats)      {}
