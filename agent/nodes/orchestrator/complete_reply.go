package orchestratornode

import (
	"context"
	"errors"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

const DefaultCompletionTimeout = 9 * time.Second

type completion struct {
	msg *schema.Message
	err error
}

// CompleteReply calls the chat model with the system prompt and the full
// history. The call races a timer; when the timer wins the provider context
// is cancelled and its late result is dropped.
func CompleteReply(ctx context.Context, in *GraphState, chatModel einomodel.BaseChatModel, timeout time.Duration) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if timeout <= 0 {
		timeout = DefaultCompletionTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	input := BuildModelInput(in.SystemPrompt, in.History)
	done := make(chan completion, 1)
	go func() {
		msg, err := chatModel.Generate(callCtx, input)
		done <- completion{msg: msg, err: err}
	}()

	select {
	case <-callCtx.Done():
		return nil, classifyProviderError(callCtx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, classifyProviderError(res.err)
		}
		if res.msg != nil {
			in.RawReply = res.msg.Content
		}
		return in, nil
	}
}

// BuildModelInput converts the conversation into eino messages behind the
// system prompt. Messages with any other role are skipped.
func BuildModelInput(systemPrompt string, history []contractx.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(history)+1)
	out = append(out, schema.SystemMessage(systemPrompt))
	for _, m := range history {
		switch m.Role {
		case contractx.RoleUser:
			out = append(out, schema.UserMessage(m.Content))
		case contractx.RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		}
	}
	return out
}

func classifyProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", contractx.ErrProviderTimeout, err)
	}
	return fmt.Errorf("%w: %v", contractx.ErrProviderError, err)
}
