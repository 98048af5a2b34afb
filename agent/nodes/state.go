// Package nodes holds the flow orchestrator's graph nodes. Each node takes
// the request-scoped GraphState, applies one transition of the flow state
// machine, and passes the state on. Once a terminal outcome is set, every
// later node is a pass-through, which keeps early exits observable in the
// node trace without branch edges.
package nodes

import (
	"errors"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

var (
	ErrInvalidUserID  = errors.New("user id is empty")
	ErrInvalidMessage = errors.New("message is empty")
)

// GraphInput is the transport-facing request shape.
type GraphInput struct {
	UserID  string
	Message string
}

// GraphOutput carries the finished flow result and its approved content.
type GraphOutput struct {
	Result   *contractx.FlowResult
	Approved contractx.ApprovedContent
}

// GraphState is the single request-scoped value threaded through the graph.
// It is never shared between requests.
type GraphState struct {
	Result         *contractx.FlowResult
	Classification contractx.ClassifyResult
	MedicationName string
	Approved       contractx.ApprovedContent
}
