package nodes

import (
	"context"
	"fmt"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

// ClassifyIntent asks the classification capability for the flow kind and
// the extracted medication entity. It is the one blocking capability call
// inside the graph and is never retried.
func ClassifyIntent(ctx context.Context, in *GraphState, classifier contractx.Classifier) (*GraphState, error) {
	if in.Result.Terminated() {
		return in, nil
	}

	result, err := classifier.Classify(ctx, contractx.ClassifyRequest{
		Message:  in.Result.Request.RawMessage,
		Language: in.Result.Request.DetectedLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: classify intent: %v", contractx.ErrModelInvoke, err)
	}

	in.Classification = result
	in.Result.Kind = result.Kind
	// The classifier reads the whole message; when it reports a language it
	// overrides the rune-based detection for everything downstream.
	if result.Language != "" {
		in.Result.Request.DetectedLanguage = result.Language
	}
	return in, nil
}
