package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
	renderx "github.com/solution-hr/solution-chat/agent/render"
)

const maxBodyBytes = 64 << 10

type chatRequest struct {
	Messages []contractx.Message `json:"messages"`
}

type chatResponse struct {
	Reply    string           `json:"reply"`
	CTA      bool             `json:"cta"`
	Mode     string           `json:"mode,omitempty"`
	Fallback bool             `json:"fallback,omitempty"`
	Blocks   []renderx.Block  `json:"blocks"`
	Contact  *renderx.Contact `json:"contact,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		badRequest(w, "invalid JSON body")
		return
	}

	history := filterMessages(req.Messages)
	if len(history) == 0 {
		badRequest(w, "messages must contain at least one user or assistant message")
		return
	}

	reply := s.replies.HandleMessage(r.Context(), history)
	rendered := renderx.Split(reply.Text)

	zerolog.Ctx(r.Context()).Info().
		Int("messages", len(history)).
		Str("mode", reply.Mode.String()).
		Bool("cta", reply.CTARequested).
		Bool("fallback", reply.Fallback).
		Msg("reply served")

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:    reply.Text,
		CTA:      reply.CTARequested,
		Mode:     reply.Mode.String(),
		Fallback: reply.Fallback,
		Blocks:   rendered.Blocks,
		Contact:  rendered.Contact,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// filterMessages drops messages whose role the UI may not send, such as a
// client-supplied system prompt.
func filterMessages(in []contractx.Message) []contractx.Message {
	out := make([]contractx.Message, 0, len(in))
	for _, m := range in {
		if m.Role.Valid() {
			out = append(out, m)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}
