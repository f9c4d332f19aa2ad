package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
	ctax "github.com/solution-hr/solution-chat/agent/cta"
	nodex "github.com/solution-hr/solution-chat/agent/nodes/orchestrator"
)

// Config is read with the CHAT prefix.
type Config struct {
	UseExplicitRouting bool          `envconfig:"USE_EXPLICIT_ROUTING" split_words:"true" default:"true"`
	CompletionTimeout  time.Duration `envconfig:"COMPLETION_TIMEOUT" split_words:"true" default:"9s"`
	RouteTimeout       time.Duration `envconfig:"ROUTE_TIMEOUT" split_words:"true" default:"3s"`
	MinRouteConfidence float64       `envconfig:"MIN_ROUTE_CONFIDENCE" split_words:"true" default:"0"`
}

type Orchestrator struct {
	chatModel einomodel.BaseChatModel
	persona   contractx.PersonaAssembler
	router    contractx.ModeRouter
	inquiries contractx.InquiryRecorder

	useExplicitRouting bool
	completionTimeout  time.Duration
	routeTimeout       time.Duration
	minRouteConfidence float64

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

// New wires the reply pipeline. router may be nil when explicit routing is
// disabled; inquiries may be nil to skip recording.
func New(
	chatModel einomodel.BaseChatModel,
	persona contractx.PersonaAssembler,
	router contractx.ModeRouter,
	inquiries contractx.InquiryRecorder,
	cfg Config,
) (*Orchestrator, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if persona == nil {
		return nil, errors.New("persona assembler is required")
	}
	if cfg.UseExplicitRouting && router == nil {
		return nil, errors.New("mode router is required when explicit routing is enabled")
	}
	if cfg.MinRouteConfidence < 0 || cfg.MinRouteConfidence > 1 {
		return nil, fmt.Errorf("%w: min route confidence must be within [0,1]", contractx.ErrValidation)
	}
	if inquiries == nil {
		inquiries = noopRecorder{}
	}

	timeout := cfg.CompletionTimeout
	if timeout <= 0 {
		timeout = nodex.DefaultCompletionTimeout
	}
	routeTimeout := cfg.RouteTimeout
	if routeTimeout <= 0 {
		routeTimeout = nodex.DefaultRouteTimeout
	}

	o := &Orchestrator{
		chatModel:          chatModel,
		persona:            persona,
		router:             router,
		inquiries:          inquiries,
		useExplicitRouting: cfg.UseExplicitRouting,
		completionTimeout:  timeout,
		routeTimeout:       routeTimeout,
		minRouteConfidence: cfg.MinRouteConfidence,
		now:                time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage produces the reply for one conversation. It never fails:
// any pipeline error is replaced by the fixed fallback reply.
func (o *Orchestrator) HandleMessage(ctx context.Context, history []contractx.Message) contractx.FormattedReply {
	requestID := contractx.RequestIDFrom(ctx)

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		RequestID: requestID,
		History:   history,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("request_id", requestID).
			Bool("timeout", errors.Is(err, contractx.ErrProviderTimeout)).
			Msg("reply pipeline failed, returning fallback")
		return contractx.FormattedReply{
			Text:     ctax.FallbackReply,
			Fallback: true,
		}
	}
	return out.Reply
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, contractx.InquiryEvent) error {
	return nil
}
