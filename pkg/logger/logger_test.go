package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{Service: "svc"})
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %s", buf.String())
	}

	logger.Info().Str("mode", "training").Msg("visible")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["service"] != "svc" || entry["mode"] != "training" || entry["message"] != "visible" {
		t.Fatalf("unexpected entry: %v", entry)
	}

	buf.Reset()
	debugLogger := New(&buf, Config{Debug: true})
	debugLogger.Debug().Msg("shown")
	if buf.Len() == 0 {
		t.Fatal("debug line missing at debug level")
	}
}

func TestInitSetsContextFallback(t *testing.T) {
	Init(Config{})

	if zerolog.Ctx(context.Background()) != zerolog.DefaultContextLogger {
		t.Fatal("context without logger should fall back to the global logger")
	}
}
