package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// WaveType 振荡器波形
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// sweep 频率在时长内从 from 滑到 to，振幅按 gain→floor 衰减
type sweep struct {
	wave        WaveType
	from, to    float64
	exponential bool
	gain, floor float64
	rate        beep.SampleRate
	phase       float64
	pos, total  int
}

// NewSweep 创建扫频音；exponential 为 true 时频率与振幅按指数曲线变化
func NewSweep(wave WaveType, from, to float64, d time.Duration, gain float64, exponential bool, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		wave:        wave,
		from:        from,
		to:          to,
		exponential: exponential,
		gain:        gain,
		floor:       0.01,
		rate:        rate,
		total:       rate.N(d),
	}
}

func (s *sweep) ramp(a, b, t float64) float64 {
	if s.exponential {
		return a * math.Pow(b/a, t)
	}
	return a + (b-a)*t
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.ramp(s.from, s.to, t)
		amp := s.ramp(s.gain, s.floor, t)

		var v float64
		switch s.wave {
		case WaveSquare:
			if s.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		default:
			v = math.Sin(2 * math.Pi * s.phase)
		}
		v *= amp
		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noiseBurst 白噪声，振幅指数衰减
type noiseBurst struct {
	rng        *rand.Rand
	gain       float64
	pos, total int
}

// NewNoiseBurst 爆炸声
func NewNoiseBurst(d time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	return &noiseBurst{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		gain:  gain,
		total: rate.N(d),
	}
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.total)
		env := g.gain * math.Pow(0.01/g.gain, t)
		v := (g.rng.Float64()*2 - 1) * env
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error { return nil }

// levelUpNotes 升级琶音 A4 C#5 E5 A5
var levelUpNotes = []float64{440, 554, 659, 880}

// NewArpeggio 依次播放音符，每个音符 step 时长
func NewArpeggio(notes []float64, step time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		parts = append(parts, NewSweep(WaveSquare, f, f, step, gain, true, rate))
	}
	return beep.Seq(parts...)
}
