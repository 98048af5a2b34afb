package nodes

import (
	policyx "github.com/eshvartz/pharmacy-agent/agent/policy"
)

// ApplyPolicy runs the policy filter over the finished FlowResult. The
// filter is pure, so this node cannot fail.
func ApplyPolicy(in *GraphState) (*GraphState, error) {
	in.Approved = policyx.Apply(in.Result)
	return in, nil
}
