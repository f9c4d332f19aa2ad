package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
	promptx "github.com/solution-hr/solution-chat/agent/prompt"
)

type fakeCompleter struct {
	out   string
	err   error
	calls int

	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) CompleteJSON(ctx context.Context, system string, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func newTestRouter(t *testing.T, completer contractx.JSONCompleter) *Router {
	t.Helper()
	r, err := New(completer, promptx.MustLoadRegistry())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestRouteSuccess(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{out: `{"mode":"facilitation","confidence":0.82}`}
	r := newTestRouter(t, fake)

	got := r.Route(context.Background(), "会議で意見がまとまりません")
	if got.Mode != contractx.ModeFacilitation || got.Confidence != 0.82 || got.Fallback {
		t.Fatalf("unexpected decision: %+v", got)
	}
	if fake.calls != 1 {
		t.Fatalf("expected one classification call, got %d", fake.calls)
	}
	if fake.lastUser != "会議で意見がまとまりません" {
		t.Fatalf("unexpected user payload: %q", fake.lastUser)
	}
	for _, key := range []string{"executive", "diagnostics", "hr_enablement", "facilitation", "training", "sales_light"} {
		if !strings.Contains(fake.lastSystem, key) {
			t.Fatalf("instruction does not list mode %s", key)
		}
	}
}

func TestRouteMalformedOutputFallsBack(t *testing.T) {
	t.Parallel()

	outputs := []string{
		"",
		"not json",
		`{"mode":"astrology","confidence":0.9}`,
		`{"confidence":0.9}`,
		`["training"]`,
		`{"mode":"training","confidence":"high"}`,
		"```json\n{\"mode\": 3}\n```",
	}

	for _, out := range outputs {
		r := newTestRouter(t, &fakeCompleter{out: out})

		got := r.Route(context.Background(), "相談です")
		if got.Mode != contractx.ModeDiagnostics || got.Confidence != 0 || !got.Fallback {
			t.Fatalf("Route() with %q = %+v, want default", out, got)
		}

		_, err := r.Classify(context.Background(), "相談です")
		if !errors.Is(err, contractx.ErrMalformedRouterOutput) {
			t.Fatalf("Classify() with %q error = %v, want ErrMalformedRouterOutput", out, err)
		}
	}
}

func TestRouteProviderErrorFallsBack(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeCompleter{err: errors.New("connection reset")})

	_, err := r.Classify(context.Background(), "研修を見直したい")
	if !errors.Is(err, contractx.ErrProviderError) {
		t.Fatalf("expected ErrProviderError, got %v", err)
	}
	got := r.Route(context.Background(), "研修を見直したい")
	if got.Mode != contractx.ModeDiagnostics || !got.Fallback {
		t.Fatalf("unexpected decision: %+v", got)
	}
}

func TestClassifyDeadline(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeCompleter{err: fmt.Errorf("post: %w", context.DeadlineExceeded)})

	_, err := r.Classify(context.Background(), "研修を見直したい")
	if !errors.Is(err, contractx.ErrProviderTimeout) {
		t.Fatalf("expected ErrProviderTimeout, got %v", err)
	}
}

func TestClassifyEmptyUtteranceSkipsCall(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{out: `{"mode":"training","confidence":1}`}
	r := newTestRouter(t, fake)

	got := r.Route(context.Background(), "   ")
	if got.Mode != contractx.ModeDiagnostics || !got.Fallback {
		t.Fatalf("unexpected decision: %+v", got)
	}
	if fake.calls != 0 {
		t.Fatalf("expected no classification call, got %d", fake.calls)
	}
}

func TestClassifyTruncatesUtterance(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{out: `{"mode":"training","confidence":0.5}`}
	r := newTestRouter(t, fake)

	long := strings.Repeat("研", MaxUtteranceRunes+100)
	if _, err := r.Classify(context.Background(), long); err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if n := utf8.RuneCountInString(fake.lastUser); n != MaxUtteranceRunes {
		t.Fatalf("expected %d runes sent, got %d", MaxUtteranceRunes, n)
	}
}

func TestParseDecision(t *testing.T) {
	t.Parallel()

	registry := promptx.MustLoadRegistry()

	tests := []struct {
		name string
		raw  string
		want contractx.RouteDecision
	}{
		{
			name: "plain",
			raw:  `{"mode":"executive","confidence":0.7}`,
			want: contractx.RouteDecision{Mode: contractx.ModeExecutive, Confidence: 0.7},
		},
		{
			name: "fenced",
			raw:  "```json\n{\"mode\":\"training\",\"confidence\":0.4}\n```",
			want: contractx.RouteDecision{Mode: contractx.ModeTraining, Confidence: 0.4},
		},
		{
			name: "missing confidence",
			raw:  `{"mode":"sales_light"}`,
			want: contractx.RouteDecision{Mode: contractx.ModeSalesLight, Confidence: 0},
		},
		{
			name: "confidence above range",
			raw:  `{"mode":"hr_enablement","confidence":7}`,
			want: contractx.RouteDecision{Mode: contractx.ModeHREnablement, Confidence: 1},
		},
		{
			name: "confidence below range",
			raw:  `{"mode":"diagnostics","confidence":-0.2}`,
			want: contractx.RouteDecision{Mode: contractx.ModeDiagnostics, Confidence: 0},
		},
		{
			name: "mode case and spacing",
			raw:  `{"mode":" Executive ","confidence":0.3}`,
			want: contractx.RouteDecision{Mode: contractx.ModeExecutive, Confidence: 0.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDecision(tt.raw, registry)
			if err != nil {
				t.Fatalf("ParseDecision() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseDecision() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnwrapOrDefault(t *testing.T) {
	t.Parallel()

	ok := contractx.RouteDecision{Mode: contractx.ModeTraining, Confidence: 0.9}
	if got := UnwrapOrDefault(ok, nil, contractx.ModeDiagnostics); got != ok {
		t.Fatalf("successful decision changed: %+v", got)
	}

	got := UnwrapOrDefault(ok, contractx.ErrMalformedRouterOutput, contractx.ModeDiagnostics)
	want := contractx.RouteDecision{Mode: contractx.ModeDiagnostics, Confidence: 0, Fallback: true}
	if got != want {
		t.Fatalf("UnwrapOrDefault() = %+v, want %+v", got, want)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, promptx.MustLoadRegistry()); err == nil {
		t.Fatal("expected error without completer")
	}
	if _, err := New(&fakeCompleter{}, nil); err == nil {
		t.Fatal("expected error without registry")
	}
}
