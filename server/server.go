// Package server exposes the reply pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
)

// Config is read with the SERVER prefix.
type Config struct {
	Addr            string        `envconfig:"ADDR" split_words:"true" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" split_words:"true" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"15s"`
}

// ReplyHandler produces the reply for one conversation.
type ReplyHandler interface {
	HandleMessage(ctx context.Context, history []contractx.Message) contractx.FormattedReply
}

type Server struct {
	replies ReplyHandler
}

// NewHandler returns the routed and wrapped HTTP handler.
func NewHandler(replies ReplyHandler) http.Handler {
	s := &Server{replies: replies}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/solution-chat", s.handleChat)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	return chainMiddlewares(mux,
		withRecover,
		withAccessLog,
		withRequestID,
	)
}

// New builds the http.Server for cfg.
func New(cfg Config, replies ReplyHandler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(replies),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
}
