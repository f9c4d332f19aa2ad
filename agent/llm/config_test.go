package llm

import (
	"errors"
	"testing"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

func TestConfigFor(t *testing.T) {
	t.Parallel()

	cfg := Config{
		BaseURL:            " https://api.openai.com/v1 ",
		APIKey:             " key ",
		ChatModel:          "gpt-4o-mini",
		MaxCompletionToken: 800,
		Temperature:        0.7,
		RouterMaxTokens:    60,
	}

	reply := cfg.For(contractx.AgentTypeReply)
	if reply.Model != "gpt-4o-mini" || reply.Temperature != 0.7 {
		t.Fatalf("unexpected reply config: %+v", reply)
	}
	if reply.MaxCompletionToken == nil || *reply.MaxCompletionToken != 800 {
		t.Fatalf("unexpected reply max tokens: %v", reply.MaxCompletionToken)
	}
	if reply.APIKey != "key" || reply.BaseURL != "https://api.openai.com/v1" {
		t.Fatalf("credentials not trimmed: %+v", reply)
	}

	router := cfg.For(contractx.AgentTypeRouter)
	if router.Model != "gpt-4o-mini" {
		t.Fatalf("router should fall back to chat model, got %q", router.Model)
	}
	if router.Temperature != 0 {
		t.Fatalf("unexpected router temperature: %v", router.Temperature)
	}
	if router.MaxCompletionToken == nil || *router.MaxCompletionToken != 60 {
		t.Fatalf("unexpected router max tokens: %v", router.MaxCompletionToken)
	}

	cfg.RouterModel = "gpt-4.1-nano"
	if got := cfg.For(contractx.AgentTypeRouter).Model; got != "gpt-4.1-nano" {
		t.Fatalf("router override ignored, got %q", got)
	}
	if got := cfg.For(contractx.AgentTypeReply).Model; got != "gpt-4o-mini" {
		t.Fatalf("router override leaked into reply, got %q", got)
	}
}

func TestConfigForUnlimitedReplyTokens(t *testing.T) {
	t.Parallel()

	got := Config{APIKey: "k", ChatModel: "m"}.For(contractx.AgentTypeReply)
	if got.MaxCompletionToken != nil {
		t.Fatalf("expected no max tokens, got %d", *got.MaxCompletionToken)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{APIKey: "k", ChatModel: "m"}},
		{name: "missing key", cfg: Config{ChatModel: "m"}, wantErr: true},
		{name: "missing model", cfg: Config{APIKey: "k", ChatModel: " "}, wantErr: true},
		{name: "negative temperature", cfg: Config{APIKey: "k", ChatModel: "m", Temperature: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr && !errors.Is(err, contractx.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
