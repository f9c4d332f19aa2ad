package orchestratornode

import (
	"fmt"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
	ctax "github.com/solution-hr/solution-chat/agent/cta"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	text := in.Reply
	if in.CTARequested {
		text = ctax.Append(text)
	}
	return GraphOutput{
		Reply: contractx.FormattedReply{
			Text:         text,
			CTARequested: in.CTARequested,
			Mode:         in.Mode,
		},
	}, nil
}
