package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config 进程级配置：.env 优先加载，环境变量覆盖默认值
type Config struct {
	Addr          string
	WebDir        string
	LogFile       string
	LogLevel      string
	LogJSON       bool
	HighScoreDB   string
	GeminiAPIKey  string
	GeminiModel   string
	AdviceTimeout time.Duration
}

// Load 读取 .env（不存在不算错误）与环境变量
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		Addr:        getEnv("VANGUARD_ADDR", ":8080"),
		WebDir:      getEnv("VANGUARD_WEB_DIR", "web"),
		LogFile:     getEnv("VANGUARD_LOG_FILE", "app.log"),
		LogLevel:    getEnv("VANGUARD_LOG_LEVEL", "debug"),
		LogJSON:     getEnv("VANGUARD_LOG_FORMAT", "console") == "json",
		HighScoreDB: getEnv("VANGUARD_HIGHSCORE_DB", "highscore.db"),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
	cfg.GeminiAPIKey, _ = GetEnvVariable("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey, _ = GetEnvVariable("API_KEY")
	}

	timeout, err := time.ParseDuration(getEnv("VANGUARD_ADVICE_TIMEOUT", "8s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VANGUARD_ADVICE_TIMEOUT: %w", err)
	}
	cfg.AdviceTimeout = timeout
	return cfg, nil
}

// GetEnvVariable 读取必需变量，为空时报错
func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

func getEnv(key, def string) string {
	if v, err := GetEnvVariable(key); err == nil {
		return v
	}
	return def
}
