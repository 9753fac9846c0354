// File path: internal/llm/llm_test.go
package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/NicoLafakis/HubAuditor9001/internal/config"
)

func TestNewProviderFallsBackWithoutKey(t *testing.T) {
	provider := NewProvider(config.LLMConfig{})
	if provider.Name() != "local" {
		t.Fatalf("expected local fallback, got %q", provider.Name())
	}
}

func TestNewProviderSelectsOpenAI(t *testing.T) {
	provider := NewProvider(config.LLMConfig{APIKey: "sk-test", Model: "gpt-4o"})
	if provider.Name() != "openai" {
		t.Fatalf("expected openai provider, got %q", provider.Name())
	}
}

func TestUserFacingMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrapped: %w", ErrInvalidCredentials), "Invalid AI service API key"},
		{fmt.Errorf("wrapped: %w", ErrRateLimited), "rate limit exceeded"},
		{fmt.Errorf("wrapped: %w", ErrUpstream), "server error"},
		{fmt.Errorf("something else"), "unexpected error"},
	}
	for _, tc := range cases {
		got := UserFacingMessage(tc.err)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("message %q does not contain %q", got, tc.want)
		}
	}
}
