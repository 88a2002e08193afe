package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"vanguard/advisor"
	"vanguard/audio"
	"vanguard/config"
	"vanguard/game"
	"vanguard/logger"
	"vanguard/store"
)

// app 终端前端：一个 ticker 严格交替驱动 "推进一帧 → 绘制一帧"
type app struct {
	screen  tcell.Screen
	session *game.Session
	keys    *heldKeys
	sound   *audio.SoundManager
	scores  store.Store
	adv     advisor.Provider

	ctx           context.Context
	adviceCh      chan string
	advice        string
	loadingAdvice bool
	lastScore     int
	newRecord     bool
}

func newApp(ctx context.Context, screen tcell.Screen, sound *audio.SoundManager, scores store.Store, adv advisor.Provider) *app {
	a := &app{
		screen:   screen,
		keys:     newHeldKeys(),
		sound:    sound,
		scores:   scores,
		adv:      adv,
		ctx:      ctx,
		adviceCh: make(chan string, 1),
		advice:   advisor.Standby,
	}
	a.session = game.NewSession(rand.New(rand.NewSource(time.Now().UnixNano())), sound, a)
	return a
}

// LevelComplete 异步拉取提示，结果经 adviceCh 回到主循环，不重入模拟
func (a *app) LevelComplete(st game.Stats) {
	logger.Log.Infof("level %d cleared score=%d", st.Level, st.Score)
	a.loadingAdvice = true
	go func() {
		text := a.adv.Advise(a.ctx, st)
		select {
		case a.adviceCh <- text:
		case <-a.ctx.Done():
		}
	}()
}

// GameOver 只在结束时写一次最高分
func (a *app) GameOver(st game.Stats) {
	a.lastScore = st.Score
	record, err := a.scores.Submit(st.Score)
	if err != nil {
		logger.Log.Errorf("submit highscore: %v", err)
	}
	a.newRecord = record
	logger.Log.Infof("game over score=%d record=%v", st.Score, record)
}

// handleEvent 返回 false 表示退出
func (a *app) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if name := keyName(ev); name != "" {
			a.keys.press(name, now)
			return true
		}
		var err error
		switch {
		case ev.Key() == tcell.KeyEnter:
			err = a.session.Start()
			a.keys.reset()
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'):
			err = a.session.NextLevel()
			a.keys.reset()
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R') && a.session.Phase == game.PhaseGameOver:
			err = a.session.Start()
			a.keys.reset()
		}
		if err != nil {
			logger.Log.Debugf("ignored key: %v", err)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) frame(now time.Time) {
	a.keys.apply(&a.session.Input, now)
	a.session.Tick()
	a.draw()
}

func (a *app) run() {
	ticker := time.NewTicker(game.FrameDuration)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev, time.Now()) {
				return
			}
		case text := <-a.adviceCh:
			a.advice = text
			a.loadingAdvice = false
		case now := <-ticker.C:
			a.frame(now)
		}
	}
}

func main() {
	logFile := flag.String("log", "vanguard-term.log", "log file path (the terminal owns stdout)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Options{File: *logFile, Level: cfg.LogLevel, JSON: cfg.LogJSON}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var scores store.Store
	if db, err := store.OpenLevelDB(cfg.HighScoreDB); err != nil {
		logger.Log.Warnf("highscore store unavailable, using memory: %v", err)
		scores = store.NewMemory(0)
	} else {
		scores = db
	}
	defer scores.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var adv advisor.Provider = advisor.Static{Text: advisor.Standby}
	if cfg.GeminiAPIKey != "" {
		if g, err := advisor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AdviceTimeout); err != nil {
			logger.Log.Warnf("advisor disabled: %v", err)
		} else {
			adv = g
		}
	}

	sound := audio.NewSoundManager()
	if !*mute {
		if err := sound.Initialize(); err != nil {
			// 没有声卡也能玩
			logger.Log.Warnf("audio initialization failed: %v", err)
		}
	}
	defer sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	newApp(ctx, screen, sound, scores, adv).run()
}
