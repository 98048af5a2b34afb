package flow

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/eshvartz/pharmacy-agent/agent/nodes"
)

// compileRequestGraph wires the flow state machine:
// validate_request -> user_gate -> classify_intent -> resolve_entity ->
// execute_tools -> apply_policy -> finalize. Terminal outcomes short-circuit
// inside the nodes, so the edge list stays linear and the node order in
// traces stays fixed.
func (s *Service) compileRequestGraph(ctx context.Context) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("user_gate",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.UserGate(ctx, in, s.gateway)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node user_gate: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ClassifyIntent(ctx, in, s.classifier)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode("resolve_entity",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ResolveEntity(ctx, in, s.gateway)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node resolve_entity: %w", err)
	}

	if err := graph.AddLambdaNode("execute_tools",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ExecuteTools(ctx, in, s.gateway)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node execute_tools: %w", err)
	}

	if err := graph.AddLambdaNode("apply_policy",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ApplyPolicy(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node apply_policy: %w", err)
	}

	if err := graph.AddLambdaNode("finalize",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.Finalize(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "user_gate"},
		{"user_gate", "classify_intent"},
		{"classify_intent", "resolve_entity"},
		{"resolve_entity", "execute_tools"},
		{"execute_tools", "apply_policy"},
		{"apply_policy", "finalize"},
		{"finalize", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("flow.handle_request"))
	if err != nil {
		return nil, fmt.Errorf("compile flow graph: %w", err)
	}
	return runner, nil
}
