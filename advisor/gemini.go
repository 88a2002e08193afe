package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"vanguard/game"
	"vanguard/logger"
)

const temperature = 0.9

// generator 抽出 genai.Models 的调用面，便于测试替换
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini 通过 Gemini API 生成提示
type Gemini struct {
	models  generator
	model   string
	timeout time.Duration
}

// NewGemini 创建客户端；timeout<=0 表示不额外限时
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{models: client.Models, model: model, timeout: timeout}, nil
}

// Advise 失败时返回兜底文案，不向上传播错误
func (g *Gemini) Advise(ctx context.Context, st game.Stats) string {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(st)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](temperature),
	})
	if err != nil {
		logger.Log.Warnf("gemini advise: %v", err)
		return FallbackError
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return FallbackEmpty
	}
	return text
}
