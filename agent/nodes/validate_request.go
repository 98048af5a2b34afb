package nodes

import (
	"strings"

	"github.com/google/uuid"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

// ValidateRequest builds the request-scoped FlowRequest: trims inputs,
// assigns a request id, and detects the message language.
func ValidateRequest(in GraphInput) (*GraphState, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		Result: &contractx.FlowResult{
			Request: contractx.FlowRequest{
				RequestID:        uuid.NewString(),
				UserID:           userID,
				RawMessage:       message,
				DetectedLanguage: DetectLanguage(message),
			},
		},
	}, nil
}
