package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vanguard/advisor"
	"vanguard/config"
	"vanguard/logger"
	"vanguard/server"
	"vanguard/store"
)

// Vanguard 入口：启动 HTTP + WebSocket 服务，浏览器端负责渲染与音效
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "server listen address, e.g. :8080")
	flag.StringVar(&cfg.WebDir, "web", cfg.WebDir, "static web client directory")
	flag.Parse()

	// 使用第三方 zap 日志库写入日志文件（带滚动）
	if err := logger.Init(logger.Options{File: cfg.LogFile, Level: cfg.LogLevel, JSON: cfg.LogJSON}); err != nil {
		panic(err)
	}
	defer logger.Sync()

	scores, err := store.OpenLevelDB(cfg.HighScoreDB)
	if err != nil {
		logger.Log.Fatalf("highscore store: %v", err)
	}
	defer scores.Close()

	var adv advisor.Provider = advisor.Static{Text: advisor.Standby}
	if cfg.GeminiAPIKey != "" {
		g, err := advisor.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AdviceTimeout)
		if err != nil {
			logger.Log.Warnf("advisor disabled: %v", err)
		} else {
			adv = g
		}
	} else {
		logger.Log.Info("no Gemini API key configured; using static advice")
	}

	rm := server.NewRoomManager(server.Deps{Advisor: adv, Scores: scores})

	mux := http.NewServeMux()
	rm.Routes(mux)
	// 前后端分离：将 / 映射到 web 目录的静态资源
	mux.Handle("/", http.FileServer(http.Dir(cfg.WebDir)))

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Log.Infof("Vanguard listening on %s; open http://localhost%v/", cfg.Addr, cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Warnf("shutdown: %v", err)
	}
	rm.Shutdown()
}
