package nodes

import (
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

// Finalize validates the approved content and emits the per-request flow
// trace event. The trace is the contract an external verifier uses to
// confirm the exact tool sequence.
func Finalize(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Result == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Approved.Mode == "" {
		return GraphOutput{}, fmt.Errorf("%w: flow finished without approved content", contractx.ErrValidation)
	}

	termination := in.Result.Termination
	if termination == "" {
		termination = contractx.TerminationCompleted
		in.Result.Termination = termination
	}

	log.Info().
		Str("request_id", in.Result.Request.RequestID).
		Str("user_id", in.Result.Request.UserID).
		Str("detected_language", string(in.Result.Request.DetectedLanguage)).
		Str("flow_kind", string(in.Result.Kind)).
		Strs("tools_used", in.Result.ToolsUsed()).
		Str("termination_reason", string(termination)).
		Msg("flow trace")

	return GraphOutput{Result: in.Result, Approved: in.Approved}, nil
}
