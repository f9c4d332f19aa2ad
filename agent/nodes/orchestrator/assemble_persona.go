package orchestratornode

import (
	"fmt"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

func AssemblePersona(in *GraphState, persona contractx.PersonaAssembler) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.SystemPrompt = persona.Assemble(in.Mode, in.HintAllModes)
	return in, nil
}
