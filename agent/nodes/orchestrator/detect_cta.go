package orchestratornode

import (
	"fmt"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
	ctax "github.com/solution-hr/solution-chat/agent/cta"
)

// DetectCTA checks the user's utterance, not the reply.
func DetectCTA(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.CTAKeyword, in.CTARequested = ctax.Match(in.Utterance)
	return in, nil
}
