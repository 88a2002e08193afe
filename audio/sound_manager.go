package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	masterGain = 0.3
)

// SoundManager 实现 game.Audio：未初始化时所有调用都是 no-op
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize 打开扬声器并挂上总线
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(&effects.Volume{
		Streamer: sm.mixer,
		Base:     2,
		Volume:   math.Log2(masterGain),
	})
	sm.initialized = true
	return nil
}

// Cleanup 停止所有声音并关闭扬声器
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	// mixer 在扬声器线程里被读取，修改前要拿扬声器锁
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Shoot 方波 800→100Hz 下扫
func (sm *SoundManager) Shoot() {
	sm.play(NewSweep(WaveSquare, 800, 100, 100*time.Millisecond, 0.3, true, sampleRate))
}

// Explosion 噪声爆破
func (sm *SoundManager) Explosion() {
	sm.play(NewNoiseBurst(200*time.Millisecond, 0.5, sampleRate))
}

// PlayerHit 锯齿波 150→40Hz 线性下滑
func (sm *SoundManager) PlayerHit() {
	sm.play(NewSweep(WaveSaw, 150, 40, 500*time.Millisecond, 0.5, false, sampleRate))
}

// LevelUp 四音琶音
func (sm *SoundManager) LevelUp() {
	sm.play(NewArpeggio(levelUpNotes, 100*time.Millisecond, 0.2, sampleRate))
}
