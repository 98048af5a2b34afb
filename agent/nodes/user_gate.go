package nodes

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
	toolx "github.com/eshvartz/pharmacy-agent/agent/tool"
	"github.com/eshvartz/pharmacy-agent/pharmacy"
)

// UserGate is the single mandatory precondition: get_user always runs
// first, before intent classification. An unknown user terminates the flow
// with zero further tool calls.
func UserGate(ctx context.Context, in *GraphState, gateway *toolx.Gateway) (*GraphState, error) {
	_, err := gateway.GetUser(ctx, in.Result, in.Result.Request.UserID)
	if errors.Is(err, pharmacy.ErrUserNotFound) {
		in.Result.Termination = contractx.TerminationUserNotFound
		return in, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user gate: %w", err)
	}
	return in, nil
}
