package router

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

// ModeSet reports registry membership.
type ModeSet interface {
	Has(mode contractx.ModeKey) bool
}

type routerLLMOutput struct {
	Mode       string   `json:"mode"`
	Confidence *float64 `json:"confidence"`
}

// ParseDecision decodes a classifier response. Code fences around the JSON
// are tolerated; a mode outside modes is rejected and a missing confidence
// reads as zero.
func ParseDecision(raw string, modes ModeSet) (contractx.RouteDecision, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return contractx.RouteDecision{}, fmt.Errorf("%w: empty response", contractx.ErrMalformedRouterOutput)
	}

	var out routerLLMOutput
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return contractx.RouteDecision{}, fmt.Errorf("%w: %v", contractx.ErrMalformedRouterOutput, err)
	}

	mode := contractx.ModeKey(strings.ToLower(strings.TrimSpace(out.Mode)))
	if mode == "" {
		return contractx.RouteDecision{}, fmt.Errorf("%w: mode is missing", contractx.ErrMalformedRouterOutput)
	}
	if !modes.Has(mode) {
		return contractx.RouteDecision{}, fmt.Errorf("%w: unknown mode %q", contractx.ErrMalformedRouterOutput, mode)
	}

	var confidence float64
	if out.Confidence != nil {
		confidence = clamp01(*out.Confidence)
	}

	return contractx.RouteDecision{Mode: mode, Confidence: confidence}, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// drop the opening fence line, which may carry a language tag
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
