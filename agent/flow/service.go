// Package flow is the flow orchestrator: one compiled request graph that
// decides the ordered Lookup Gateway sequence per classified intent,
// enforces the mandatory user gate, and halts on the defined terminal
// outcomes. The service is stateless; every invocation builds a fresh
// request-scoped FlowResult.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
	nodex "github.com/eshvartz/pharmacy-agent/agent/nodes"
	toolx "github.com/eshvartz/pharmacy-agent/agent/tool"
	"github.com/eshvartz/pharmacy-agent/pharmacy"
)

var (
	ErrInvalidUserID  = nodex.ErrInvalidUserID
	ErrInvalidMessage = nodex.ErrInvalidMessage
)

type Service struct {
	gateway    *toolx.Gateway
	classifier contractx.Classifier
	composer   contractx.Composer

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

// Option customizes the service.
type Option func(*options)

type options struct {
	fold pharmacy.Normalizer
}

// WithNormalizer injects a custom medication-name normalizer.
func WithNormalizer(fold pharmacy.Normalizer) Option {
	return func(o *options) {
		o.fold = fold
	}
}

func New(
	directory pharmacy.Directory,
	classifier contractx.Classifier,
	composer contractx.Composer,
	opts ...Option,
) (*Service, error) {
	if directory == nil {
		return nil, errors.New("pharmacy directory is required")
	}
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if composer == nil {
		return nil, errors.New("composer is required")
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var gatewayOpts []toolx.Option
	if o.fold != nil {
		gatewayOpts = append(gatewayOpts, toolx.WithNormalizer(o.fold))
	}
	gateway, err := toolx.NewGateway(directory, gatewayOpts...)
	if err != nil {
		return nil, err
	}

	s := &Service{
		gateway:    gateway,
		classifier: classifier,
		composer:   composer,
	}

	graphRunner, err := s.compileRequestGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// Respond handles one request end to end and returns the full reply text
// together with the flow result.
func (s *Service) Respond(ctx context.Context, userID, message string) (string, *contractx.FlowResult, error) {
	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{UserID: userID, Message: message})
	if err != nil {
		return "", nil, err
	}

	reply, err := s.composer.Compose(ctx, contractx.ComposeRequest{Content: out.Approved})
	if err != nil {
		return "", out.Result, err
	}
	if strings.TrimSpace(reply) == "" {
		return "", out.Result, fmt.Errorf("%w: composer returned empty reply", contractx.ErrValidation)
	}
	return reply, out.Result, nil
}

// RespondStream handles one request and delivers the reply incrementally.
// Chunks arrive in order, exactly once; cancellation stops further output
// with nothing to roll back.
func (s *Service) RespondStream(ctx context.Context, userID, message string, emit func(chunk string) error) (*contractx.FlowResult, error) {
	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{UserID: userID, Message: message})
	if err != nil {
		return nil, err
	}

	if err := s.composer.ComposeStream(ctx, contractx.ComposeRequest{Content: out.Approved}, emit); err != nil {
		return out.Result, err
	}
	return out.Result, nil
}
