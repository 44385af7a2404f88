package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ChatMessage một message trong hội thoại với dịch vụ chat-completion
type ChatMessage struct {
	Role    string `json:"role"` // "system" | "user"
	Content string `json:"content"`
}

// ChatClient hợp đồng với dịch vụ chat-completion. Trả về text thô,
// bên gọi tự chịu trách nhiệm đào JSON ra khỏi câu trả lời.
type ChatClient interface {
	Complete(ctx context.Context, messages []ChatMessage, maxTokens int) (string, error)
}

// ChatConfig cấu hình client OpenAI-compatible
type ChatConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// OpenAIChatClient client HTTP cho mọi endpoint OpenAI-compatible
type OpenAIChatClient struct {
	config     ChatConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// chatCompletionRequest request body gửi lên /chat/completions
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatCompletionResponse phần response cần dùng
type chatCompletionResponse struct {
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// NewOpenAIChatClient tạo chat client. Trả về lỗi nếu thiếu base URL hoặc model.
func NewOpenAIChatClient(cfg ChatConfig, logger *zap.Logger) (*OpenAIChatClient, error) {
	if cfg.BaseURL == "" || cfg.Model == "" {
		return nil, errors.New("chat client cần base URL và model")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIChatClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// Complete gọi POST /chat/completions và trả về content của choice đầu tiên.
func (c *OpenAIChatClient) Complete(ctx context.Context, messages []ChatMessage, maxTokens int) (string, error) {
	reqBody, err := json.Marshal(chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("tạo request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gọi chat completion: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("đọc response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion trả về status %d: %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("chat completion không có choice nào")
	}

	c.logger.Debug("chat completion xong",
		zap.Duration("duration", time.Since(start)),
		zap.String("finish_reason", result.Choices[0].FinishReason))

	return result.Choices[0].Message.Content, nil
}
