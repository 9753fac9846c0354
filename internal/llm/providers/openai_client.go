// File path: internal/llm/providers/openai_client.go
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go/v2"

	"github.com/NicoLafakis/HubAuditor9001/internal/common"
)

const defaultMaxTokens = 4096

// OpenAIProvider sends prompts to the OpenAI chat completions API. It does
// not retry; a failed request surfaces as one of the typed taxonomy errors.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	maxTokens int
}

func NewOpenAIProvider(client openai.Client, model string, maxTokens int) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o"
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &OpenAIProvider{client: client, model: model, maxTokens: maxTokens}
}

func (o *OpenAIProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	logger := common.Logger()
	logger.Debug("llm: sending chat completion request", "model", o.model, "messages", len(messages))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		MaxCompletionTokens: openai.Int(int64(o.maxTokens)),
	}
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		classified := classify(err)
		logger.Error("llm: chat completion failed", "error", classified)
		return "", classified
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUpstream)
	}
	logger.Debug("llm: chat completion succeeded")
	return resp.Choices[0].Message.Content, nil
}

// Probe sends a minimal request to verify connectivity and credentials.
func (o *OpenAIProvider) Probe(ctx context.Context) bool {
	_, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		MaxCompletionTokens: openai.Int(10),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("Hello"),
		},
	})
	return err == nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}

// classify maps an API error onto the failure taxonomy by HTTP status.
func classify(err error) error {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return err
	}
	switch {
	case apierr.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	case apierr.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case apierr.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	default:
		return err
	}
}
