package orchestratornode

import (
	"fmt"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
	ctax "github.com/solution-hr/solution-chat/agent/cta"
	formatx "github.com/solution-hr/solution-chat/agent/format"
)

// ReshapeReply removes any marker the model produced and applies the house
// text style.
func ReshapeReply(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Reply = formatx.Reshape(ctax.Strip(in.RawReply))
	return in, nil
}
