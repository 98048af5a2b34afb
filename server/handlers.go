package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
	"github.com/eshvartz/pharmacy-agent/agent/flow"
	nodex "github.com/eshvartz/pharmacy-agent/agent/nodes"
	policyx "github.com/eshvartz/pharmacy-agent/agent/policy"
)

// Responder is the slice of the flow service the transport needs.
type Responder interface {
	RespondStream(ctx context.Context, userID, message string, emit func(chunk string) error) (*contractx.FlowResult, error)
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	Medications int    `json:"medications"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	names, err := s.directory.MedicationNames(r.Context())
	if err != nil {
		http.Error(w, "directory unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:      "ok",
		Uptime:      time.Since(s.startedAt).Round(time.Second).String(),
		Medications: len(names),
	})
}

// handleChat streams the reply as plain text. The response body is never
// empty: validation errors reject before streaming, and an upstream
// generation failure becomes one clear failure message.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	flusher, _ := w.(http.Flusher)

	emitted := false
	emit := func(chunk string) error {
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		emitted = true
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	res, err := s.agent.RespondStream(r.Context(), req.UserID, req.Message, emit)
	if res != nil {
		chatFlowsTotal.WithLabelValues(string(res.Kind), string(res.Termination)).Inc()
	}
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, flow.ErrInvalidUserID), errors.Is(err, flow.ErrInvalidMessage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing to roll back.
	default:
		log.Error().Err(err).Str("user_id", req.UserID).Msg("chat request failed")
		failure := policyx.FailureMessage(nodex.DetectLanguage(req.Message))
		if emitted {
			failure = "\n" + failure
		}
		_ = emit(failure)
	}
}
