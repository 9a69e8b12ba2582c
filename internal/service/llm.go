package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/metrics"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"go.uber.org/zap"
)

// GeneratedIngredient is an ingredient as returned by the model. Units are
// not yet canonical ("lb" and "oz" are allowed).
type GeneratedIngredient struct {
	Name   string     `json:"name"`
	Amount flexNumber `json:"amount"`
	Unit   string     `json:"unit"`
	Price  *int64     `json:"price,omitempty"`
}

// GeneratedRecipe is one recipe of a generated menu.
type GeneratedRecipe struct {
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	PrepTime     flexNumber            `json:"prepTime"`
	CookTime     flexNumber            `json:"cookTime"`
	Difficulty   string                `json:"difficulty"`
	Servings     flexNumber            `json:"servings"`
	Ingredients  []GeneratedIngredient `json:"ingredients"`
	Instructions []string              `json:"instructions"`
	ImageQuery   string                `json:"imageQuery,omitempty"`
	GrillTips    []string              `json:"grillTips,omitempty"`
}

// flexNumber accepts both JSON numbers and numeric strings.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*n = flexNumber(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*n = 0
		return nil
	}
	// "15 minutes" and similar
	if i := strings.IndexFunc(str, func(r rune) bool { return (r < '0' || r > '9') && r != '.' }); i > 0 {
		str = str[:i]
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", str)
	}
	*n = flexNumber(v)
	return nil
}

// LLMConfig configures an OpenAI compatible chat completion endpoint.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LLMService handles interactions with the chat completion API
type LLMService struct {
	config LLMConfig
	client *http.Client
	logger *zap.Logger
}

func NewLLMService(config LLMConfig, logger *zap.Logger) *LLMService {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &LLMService{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completion request
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *LLMService) endpoint() string {
	base := strings.TrimRight(s.config.BaseURL, "/")
	if strings.HasSuffix(base, "/chat/completions") {
		return base
	}
	return base + "/chat/completions"
}

// GenerateMenu asks the model for count recipes and parses them.
func (s *LLMService) GenerateMenu(ctx context.Context, req *types.GenerateMenuRequest, count int) ([]GeneratedRecipe, error) {
	if s.config.APIKey == "" {
		return nil, fmt.Errorf("%w: api key not configured", ErrAIUnavailable)
	}

	content, err := s.complete(ctx, []Message{{Role: "user", Content: BuildMenuPrompt(req, count)}})
	if err != nil {
		return nil, err
	}

	recipes, err := ParseMenuContent(content)
	if err != nil {
		s.logger.Warn("unparseable ai response", zap.Int("length", len(content)), zap.Error(err))
		return nil, err
	}
	for i := range recipes {
		recipes[i].applyDefaults(req.Servings)
	}
	return recipes, nil
}

func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	jsonData, err := json.Marshal(Request{Model: s.config.Model, Messages: messages, Temperature: 0.8})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	metrics.LLMRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %w", ErrAIUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Error("ai request failed", zap.Int("status", resp.StatusCode), zap.ByteString("body", truncate(body, 512)))
		return "", fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAIResponse, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidAIResponse)
	}
	return result.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

// ParseMenuContent extracts recipes from a model reply. The reply may be
// wrapped in a markdown code fence and may be either a JSON array or an
// object with a "recipes" array.
func ParseMenuContent(content string) ([]GeneratedRecipe, error) {
	cleaned := stripCodeFence(content)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty content", ErrInvalidAIResponse)
	}

	var recipes []GeneratedRecipe
	arrStart, objStart := strings.IndexByte(cleaned, '['), strings.IndexByte(cleaned, '{')
	switch {
	case arrStart >= 0 && (objStart < 0 || arrStart < objStart):
		if err := json.Unmarshal([]byte(extractBetween(cleaned, '[', ']')), &recipes); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAIResponse, err)
		}
	case objStart >= 0:
		var wrapper struct {
			Recipes []GeneratedRecipe `json:"recipes"`
		}
		if err := json.Unmarshal([]byte(extractBetween(cleaned, '{', '}')), &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAIResponse, err)
		}
		recipes = wrapper.Recipes
	default:
		return nil, fmt.Errorf("%w: no json found", ErrInvalidAIResponse)
	}

	out := recipes[:0]
	for _, r := range recipes {
		if strings.TrimSpace(r.Name) != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no recipes", ErrInvalidAIResponse)
	}
	return out, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func extractBetween(s string, opening, closing byte) string {
	start := strings.IndexByte(s, opening)
	end := strings.LastIndexByte(s, closing)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func (r *GeneratedRecipe) applyDefaults(servings int) {
	if r.PrepTime <= 0 {
		r.PrepTime = 15
	}
	if r.CookTime <= 0 {
		r.CookTime = 30
	}
	switch strings.ToLower(r.Difficulty) {
	case "easy", "medium", "hard":
		r.Difficulty = strings.ToLower(r.Difficulty)
	default:
		r.Difficulty = "medium"
	}
	if servings > 0 {
		r.Servings = flexNumber(servings)
	}
}
