package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	composex "github.com/eshvartz/pharmacy-agent/agent/compose"
	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

// Composer renders factual content through a streaming model call so the
// attribute list reads naturally in the detected language. Deterministic
// and refusal content passes through verbatim; those templates never
// touch the model. The model receives only the approved fields, and an
// empty generation falls back to the deterministic rendering so the reply
// body is never empty.
type Composer struct {
	client   *openaisdk.Client
	model    string
	prompt   string
	fallback composex.TemplateComposer
}

func NewComposer(client *openaisdk.Client, model, systemPrompt string) (*Composer, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openai client is required", contractx.ErrValidation)
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, fmt.Errorf("%w: composer model is required", contractx.ErrValidation)
	}
	return &Composer{
		client:   client,
		model:    model,
		prompt:   systemPrompt,
		fallback: composex.NewTemplateComposer(),
	}, nil
}

func (c *Composer) Compose(ctx context.Context, req contractx.ComposeRequest) (string, error) {
	if req.Content.Mode != contractx.ModeFactual {
		return c.fallback.Compose(ctx, req)
	}

	params, err := c.params(ctx, req)
	if err != nil {
		return "", err
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: composer completion: %v", contractx.ErrModelInvoke, err)
	}

	if len(completion.Choices) > 0 {
		if text := strings.TrimSpace(completion.Choices[0].Message.Content); text != "" {
			return text, nil
		}
	}
	return c.fallback.Compose(ctx, req)
}

func (c *Composer) ComposeStream(ctx context.Context, req contractx.ComposeRequest, emit func(chunk string) error) error {
	if req.Content.Mode != contractx.ModeFactual {
		return c.fallback.ComposeStream(ctx, req, emit)
	}

	params, err := c.params(ctx, req)
	if err != nil {
		return err
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	emitted := false
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := emit(delta); err != nil {
			return err
		}
		emitted = true
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("%w: composer stream: %v", contractx.ErrModelInvoke, err)
	}
	if !emitted {
		return c.fallback.ComposeStream(ctx, req, emit)
	}
	return nil
}

// params builds the completion request: the deterministic rendering plus
// the raw fields, so the model reformulates but cannot learn a fact the
// policy filter did not approve.
func (c *Composer) params(ctx context.Context, req contractx.ComposeRequest) (openaisdk.ChatCompletionNewParams, error) {
	factSheet, err := c.fallback.Compose(ctx, req)
	if err != nil {
		return openaisdk.ChatCompletionNewParams{}, err
	}

	payload := map[string]any{
		"language":   req.Content.Language,
		"fact_sheet": factSheet,
		"fields":     req.Content.Fields,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return openaisdk.ChatCompletionNewParams{}, fmt.Errorf("%w: marshal composer payload: %v", contractx.ErrValidation, err)
	}

	return openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(c.prompt),
			openaisdk.UserMessage(string(input)),
		},
	}, nil
}
