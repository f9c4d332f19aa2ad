package orchestratornode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

// DefaultRouteTimeout bounds the classification call so that routing plus
// completion stays inside the request budget.
const DefaultRouteTimeout = 3 * time.Second

// RouteMode asks the router for a mode under its own deadline. A decision
// below minConfidence is discarded in favour of the all-modes hint.
func RouteMode(
	ctx context.Context,
	in *GraphState,
	router contractx.ModeRouter,
	minConfidence float64,
	timeout time.Duration,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if router == nil {
		return nil, fmt.Errorf("%w: mode router is nil", contractx.ErrValidation)
	}

	if timeout <= 0 {
		timeout = DefaultRouteTimeout
	}
	routeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	decision := router.Route(routeCtx, in.Utterance)
	in.Route = decision

	if decision.Confidence < minConfidence {
		zerolog.Ctx(ctx).Debug().
			Str("mode", decision.Mode.String()).
			Float64("confidence", decision.Confidence).
			Float64("min_confidence", minConfidence).
			Msg("route below confidence threshold, using all-modes hint")
		return HintAllModes(in)
	}

	in.Mode = decision.Mode
	in.HintAllModes = false
	return in, nil
}

func HintAllModes(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Mode = ""
	in.HintAllModes = true
	return in, nil
}
