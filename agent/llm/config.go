package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
	openaix "github.com/solution-hr/solution-chat/pkg/openai"
)

// Config is read with the OPENAI prefix. The reply and router calls share
// credentials but pick their model and sampling settings independently.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	ChatModel          string        `envconfig:"CHAT_MODEL" split_words:"true" default:"gpt-4o-mini"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"0"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`

	RouterModel       string  `envconfig:"ROUTER_MODEL" split_words:"true"`
	RouterTemperature float32 `envconfig:"ROUTER_TEMPERATURE" split_words:"true" default:"0"`
	RouterMaxTokens   int     `envconfig:"ROUTER_MAX_TOKENS" split_words:"true" default:"60"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openai api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.ChatModel) == "" {
		return fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if c.Temperature < 0 || c.RouterTemperature < 0 {
		return fmt.Errorf("%w: temperature must be >= 0", contractx.ErrValidation)
	}
	return nil
}

// For returns the endpoint settings for one kind of call. The router falls
// back to the chat model when no router model is configured.
func (c Config) For(agentType contractx.AgentType) openaix.Config {
	modelName := strings.TrimSpace(c.ChatModel)
	temp := c.Temperature
	var maxTokens *int

	switch agentType {
	case contractx.AgentTypeRouter:
		if v := strings.TrimSpace(c.RouterModel); v != "" {
			modelName = v
		}
		temp = c.RouterTemperature
		if c.RouterMaxTokens > 0 {
			n := c.RouterMaxTokens
			maxTokens = &n
		}
	default:
		if c.MaxCompletionToken > 0 {
			n := c.MaxCompletionToken
			maxTokens = &n
		}
	}

	return openaix.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: maxTokens,
		Temperature:        temp,
		Timeout:            c.Timeout,
	}
}
