package contract

import "context"

// ClassifyRequest is the input to the intent-classification capability.
type ClassifyRequest struct {
	Message  string   `json:"message"`
	Language Language `json:"language"`
}

// ClassifyResult is the capability's structured answer: the flow kind, the
// extracted medication name if any, and every candidate name the message
// could be referring to. More than one candidate signals ambiguity. A
// non-empty Language overrides the rune-based detection for the rest of
// the flow.
type ClassifyResult struct {
	Kind           FlowKind `json:"intent"`
	MedicationName string   `json:"medication_name,omitempty"`
	Candidates     []string `json:"candidates,omitempty"`
	Language       Language `json:"language,omitempty"`
}

// Classifier is the opaque intent-classification capability. The
// orchestrator treats it as a single blocking call per request.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResult, error)
}

// ComposeRequest carries the policy-approved content to render.
type ComposeRequest struct {
	Content ApprovedContent `json:"content"`
}

// Composer renders approved content into final text in the detected
// language. Streamed chunks must arrive in order, without duplication, and
// the full reply must never be empty.
type Composer interface {
	Compose(ctx context.Context, req ComposeRequest) (string, error)
	ComposeStream(ctx context.Context, req ComposeRequest, emit func(chunk string) error) error
}
