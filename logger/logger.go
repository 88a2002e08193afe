package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 全局 SugaredLogger；Init 之前是 no-op，测试里可以直接调用
var Log = zap.NewNop().Sugar()

// Options 日志输出配置
type Options struct {
	File  string // 滚动日志文件路径
	Level string // debug|info|warn|error，空串为 debug
	JSON  bool   // 默认控制台格式
}

// Init 按配置把 zap 接到 lumberjack 滚动文件上
func Init(opts Options) error {
	level := zapcore.DebugLevel
	if opts.Level != "" {
		lv, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = lv
	}

	// 单文件 10MB，保留 3 份，最多 7 天
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	})

	Log = zap.New(zapcore.NewCore(newEncoder(opts.JSON), sink, level), zap.AddCaller()).Sugar()
	return nil
}

func newEncoder(json bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.StacktraceKey = "stack"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if json {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// Sync 刷新缓冲
func Sync() {
	_ = Log.Sync()
}
