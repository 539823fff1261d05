package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/utils"
)

const (
	Provider = "gemini"

	DefaultModel          = "gemini-2.5-pro"
	DefaultEmbeddingModel = "gemini-embedding-001"
	DefaultMaxRetries     = 3
	DefaultMaxLogLength   = 2000

	retryBase     = time.Second
	maxQuotaDelay = 30 * time.Second
)

var (
	wait = utils.WaitFor

	retryDelayPattern = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)
)

// Config selects models and retry behaviour.
type Config struct {
	Model          string `mapstructure:"model" json:"model"`
	EmbeddingModel string `mapstructure:"embedding-model" json:"embedding-model"`
	MaxRetries     int    `mapstructure:"max-retries" json:"max-retries"`
	MaxLogLength   int    `mapstructure:"max-log-length" json:"max-log-length"`
}

func (c Config) withDefaults() Config {
	if c.Model = strings.TrimSpace(c.Model); c.Model == "" {
		c.Model = DefaultModel
	}
	if c.EmbeddingModel = strings.TrimSpace(c.EmbeddingModel); c.EmbeddingModel == "" {
		c.EmbeddingModel = DefaultEmbeddingModel
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MaxLogLength <= 0 {
		c.MaxLogLength = DefaultMaxLogLength
	}
	return c
}

// models is the part of genai.Models the client calls.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Client wraps the Google GenAI client for text generation and embeddings.
type Client struct {
	models models
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey string, cfg Config, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(client.Models, cfg, log), nil
}

func newClient(m models, cfg Config, log *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		models: m,
		cfg:    cfg,
		logger: logger.WithAIFields(log, Provider, cfg.Model),
	}
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.cfg.Model
}

func (c *Client) EmbeddingModel() string {
	if c == nil {
		return ""
	}
	return c.cfg.EmbeddingModel
}

func (c *Client) MaxLogLength() int {
	if c == nil {
		return DefaultMaxLogLength
	}
	return c.cfg.MaxLogLength
}

// GenerateContent sends the prompt to Gemini and returns the joined textual response.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	c.logger.Debug("gemini request", zap.String("prompt", utils.TruncateForLog(prompt, c.cfg.MaxLogLength)))

	var output string
	err := c.retry(ctx, "generate content", func() error {
		resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), nil)
		if err != nil {
			return err
		}
		output = responseText(resp)
		if output == "" {
			return errors.New("gemini api returned empty response")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	c.logger.Debug("gemini response", zap.String("response", utils.TruncateForLog(output, c.cfg.MaxLogLength)))
	return output, nil
}

// EmbedContent returns the embedding of one text.
func (c *Client) EmbedContent(ctx context.Context, text string) ([]float32, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	var values []float32
	err := c.retry(ctx, "embed content", func() error {
		resp, err := c.models.EmbedContent(ctx, c.cfg.EmbeddingModel, genai.Text(text), nil)
		if err != nil {
			return err
		}
		if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
			return errors.New("gemini api returned empty embedding")
		}
		values = resp.Embeddings[0].Values
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// retry runs call up to MaxRetries times. Only temporary API errors are
// retried, and a quota error asking for a long pause is returned at once.
func (c *Client) retry(ctx context.Context, op string, call func() error) error {
	var err error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if err = call(); err == nil {
			return nil
		}

		delay, retryable := retryDelay(err, attempt)
		if !retryable || attempt == c.cfg.MaxRetries {
			break
		}

		c.logger.Warn("gemini call failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if werr := wait(ctx, delay); werr != nil {
			return werr
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests:
		if d, ok := parseRetryDelay(apiErr.Message); ok {
			return d, d <= maxQuotaDelay
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
	default:
		return 0, false
	}

	return utils.LinearBackoff(retryBase, attempt), true
}

func parseRetryDelay(message string) (time.Duration, bool) {
	m := retryDelayPattern.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
