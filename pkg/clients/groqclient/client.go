// Package groqclient talks to the Groq chat-completion API for advisory
// analysis of staffing decisions. Responses are best-effort: every advisory
// method degrades to an explicit default instead of propagating transport or
// parse failures, so the deterministic engine never depends on the model
// behaving.
package groqclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama3-8b-8192"
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
	defaultCacheTTL    = 5 * time.Minute
	defaultTimeout     = 30 * time.Second
)

// Config holds the Groq API settings
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int

	// CacheTTL bounds how long identical prompts are served from cache
	CacheTTL time.Duration
}

// Client wraps the Groq chat-completion API
type Client struct {
	httpClient *http.Client
	cfg        Config
	cache      *redis.Client
	logger     *zap.Logger
}

// NewClient creates a new Groq client. The redis cache is optional; pass nil
// to disable response caching.
func NewClient(cfg Config, httpClient *http.Client, cache *redis.Client, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		cache:      cache,
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateResponse sends one prompt to the model and returns its text reply.
// An empty systemMessage omits the system turn. Identical prompts within the
// cache TTL are served from cache without hitting the API.
func (c *Client) GenerateResponse(ctx context.Context, prompt, systemMessage string) (string, error) {
	cacheKey := c.cacheKey(prompt, systemMessage)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			c.logger.Debug("Advisory cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	messages := []chatMessage{}
	if systemMessage != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemMessage})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat completion API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion API returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := completion.Choices[0].Message.Content

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, content, c.cfg.CacheTTL).Err(); err != nil {
			c.logger.Warn("Failed to cache advisory response", zap.Error(err))
		}
	}

	return content, nil
}

func (c *Client) cacheKey(prompt, systemMessage string) string {
	sum := sha256.Sum256([]byte(c.cfg.Model + "\x00" + systemMessage + "\x00" + prompt))
	return "advisory:" + hex.EncodeToString(sum[:16])
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
