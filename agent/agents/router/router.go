// Package router classifies a user utterance into one persona mode with a
// single JSON-constrained completion call.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
	promptx "github.com/solution-hr/solution-chat/agent/prompt"
)

// MaxUtteranceRunes bounds the text sent for classification.
const MaxUtteranceRunes = 4000

var _ contractx.ModeRouter = (*Router)(nil)

type Router struct {
	completer   contractx.JSONCompleter
	registry    *promptx.Registry
	instruction string
}

func New(completer contractx.JSONCompleter, registry *promptx.Registry) (*Router, error) {
	if completer == nil {
		return nil, errors.New("json completer is required")
	}
	if registry == nil {
		return nil, errors.New("persona registry is required")
	}
	return &Router{
		completer:   completer,
		registry:    registry,
		instruction: classificationInstruction(registry),
	}, nil
}

// Classify makes one classification call. Every failure is reported as an
// error; use Route for the degrading variant.
func (r *Router) Classify(ctx context.Context, utterance string) (contractx.RouteDecision, error) {
	text := truncateRunes(strings.TrimSpace(utterance), MaxUtteranceRunes)
	if text == "" {
		return contractx.RouteDecision{}, fmt.Errorf("%w: utterance is empty", contractx.ErrValidation)
	}

	raw, err := r.completer.CompleteJSON(ctx, r.instruction, text)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return contractx.RouteDecision{}, fmt.Errorf("%w: router call: %v", contractx.ErrProviderTimeout, err)
		}
		return contractx.RouteDecision{}, fmt.Errorf("%w: router call: %v", contractx.ErrProviderError, err)
	}

	return ParseDecision(raw, r.registry)
}

// Route never fails: any classification error yields the default mode.
func (r *Router) Route(ctx context.Context, utterance string) contractx.RouteDecision {
	decision, err := r.Classify(ctx, utterance)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("default_mode", r.registry.DefaultMode().String()).
			Msg("mode routing fell back to default")
	}
	return UnwrapOrDefault(decision, err, r.registry.DefaultMode())
}

// UnwrapOrDefault maps a failed classification to fallback with zero
// confidence and passes a successful one through.
func UnwrapOrDefault(decision contractx.RouteDecision, err error, fallback contractx.ModeKey) contractx.RouteDecision {
	if err != nil {
		return contractx.RouteDecision{Mode: fallback, Confidence: 0, Fallback: true}
	}
	return decision
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
