package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

// RecordInquiry hands a triggered CTA to the recorder. Recorder failures are
// logged and never fail the reply.
func RecordInquiry(ctx context.Context, in *GraphState, recorder contractx.InquiryRecorder) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if !in.CTARequested || recorder == nil {
		return in, nil
	}

	ev := contractx.InquiryEvent{
		RequestID: in.RequestID,
		Mode:      in.Mode,
		Keyword:   in.CTAKeyword,
		CreatedAt: in.Now,
	}
	if err := recorder.Record(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("request_id", in.RequestID).Msg("record inquiry event failed")
	}
	return in, nil
}
