package contract

import "context"

type ModeRouter interface {
	Route(ctx context.Context, utterance string) RouteDecision
}

type PersonaAssembler interface {
	Assemble(mode ModeKey, hintAllModes bool) string
}

// JSONCompleter runs a single completion whose output is constrained to one
// JSON object.
type JSONCompleter interface {
	CompleteJSON(ctx context.Context, system string, user string) (string, error)
}

type InquiryRecorder interface {
	Record(ctx context.Context, ev InquiryEvent) error
}
