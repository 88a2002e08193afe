package server

import "time"

const (
	// TicksPerSecond 世界推进频率（60 TPS，与 60Hz 显示刷新一致）
	TicksPerSecond = 60
)

var tickInterval = time.Second / TicksPerSecond

// StartTicker 启动房间的 Tick 循环（单线程推进世界）
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.quit:
				return
			case <-ticker.C:
				// quit 与 ticker 同时就绪时 select 随机选择，这里再确认一次
				select {
				case <-r.quit:
					return
				default:
				}
				// 核心循环：处理输入 → 更新世界 → 广播结果
				start := time.Now()
				r.step()
				r.metrics.AddTick(time.Since(start).Nanoseconds())
			}
		}
	}()
}

// StopTicker 停止 Tick 并取消在途的提示请求；可重复调用
func (r *Room) StopTicker() {
	r.stopOnce.Do(func() {
		close(r.quit)
		r.cancel()
	})
}

// Done 房间停止后关闭
func (r *Room) Done() <-chan struct{} { return r.quit }
