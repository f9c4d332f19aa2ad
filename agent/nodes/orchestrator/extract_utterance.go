package orchestratornode

import (
	"time"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

type GraphInput struct {
	RequestID string
	History   []contractx.Message
}

type GraphOutput struct {
	Reply contractx.FormattedReply
}

type GraphState struct {
	RequestID string
	History   []contractx.Message
	Utterance string
	Now       time.Time

	Route        contractx.RouteDecision
	Mode         contractx.ModeKey
	HintAllModes bool
	SystemPrompt string

	RawReply     string
	Reply        string
	CTARequested bool
	CTAKeyword   string
}

// ExtractUtterance picks the most recent user message, scanning from the
// end. A history without one yields an empty utterance.
func ExtractUtterance(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	var utterance string
	for i := len(in.History) - 1; i >= 0; i-- {
		if in.History[i].Role == contractx.RoleUser {
			utterance = in.History[i].Content
			break
		}
	}

	return &GraphState{
		RequestID: in.RequestID,
		History:   in.History,
		Utterance: utterance,
		Now:       nowFn().UTC(),
	}, nil
}
