// File path: internal/llm/llm.go
package llm

import (
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/NicoLafakis/HubAuditor9001/internal/common"
	"github.com/NicoLafakis/HubAuditor9001/internal/config"
	"github.com/NicoLafakis/HubAuditor9001/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// Failure taxonomy for the generation service. The client performs no
// retries; callers surface these as cause-specific messages and let the user
// retry the whole pipeline.
var (
	ErrInvalidCredentials = providers.ErrInvalidCredentials
	ErrRateLimited        = providers.ErrRateLimited
	ErrUpstream           = providers.ErrUpstream
)

// NewProvider builds the configured generation provider, falling back to the
// local stub when no API key is present so the rest of the app stays usable.
func NewProvider(cfg config.LLMConfig) Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		logger.Warn("llm: no API key configured; falling back to local provider")
		return providers.NewLocalProvider()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(cfg.BaseURL); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected", "model", cfg.Model)
	return providers.NewOpenAIProvider(client, cfg.Model, cfg.MaxTokens)
}

// UserFacingMessage maps a generation failure to the message shown in the
// dashboard error panel.
func UserFacingMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid AI service API key. Please check your credentials."
	case errors.Is(err, ErrRateLimited):
		return "AI service rate limit exceeded. Please try again later."
	case errors.Is(err, ErrUpstream):
		return "AI service server error. Please try again later."
	default:
		return "An unexpected error occurred while generating the analysis."
	}
}
