// Package llm implements the intent-classification and response-rendering
// capabilities on top of an OpenRouter-compatible endpoint. The
// orchestrator only ever sees the contract ports.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
	openrouterx "github.com/eshvartz/pharmacy-agent/pkg/openrouter"
)

type classifierLLMOutput struct {
	Intent         string   `json:"intent"`
	MedicationName string   `json:"medication_name,omitempty"`
	Candidates     []string `json:"candidates,omitempty"`
	Language       string   `json:"language,omitempty"`
}

// Classifier maps a free-form message onto a flow kind plus extracted
// medication entity through a structured-output model call.
type Classifier struct {
	runner compose.Runnable[map[string]any, classifierLLMOutput]
}

func NewClassifier(ctx context.Context, builder openrouterx.LLMBuilder, systemPrompt string) (*Classifier, error) {
	chatModel, err := builder.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create classifier model: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileStructuredLLMGraph[classifierLLMOutput](ctx, chatModel, systemPrompt, "classifier.model_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile classifier graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Classifier{runner: runner}, nil
}

func (c *Classifier) Classify(ctx context.Context, req contractx.ClassifyRequest) (contractx.ClassifyResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return contractx.ClassifyResult{}, fmt.Errorf("%w: message is required", contractx.ErrValidation)
	}

	payload := map[string]any{
		"message":  req.Message,
		"language": req.Language,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return contractx.ClassifyResult{}, fmt.Errorf("%w: marshal classifier payload: %v", contractx.ErrValidation, err)
	}

	out, err := c.runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return contractx.ClassifyResult{}, fmt.Errorf("%w: classifier invoke: %v", contractx.ErrModelInvoke, err)
	}

	kind, err := parseFlowKind(out.Intent)
	if err != nil {
		return contractx.ClassifyResult{}, err
	}

	return contractx.ClassifyResult{
		Kind:           kind,
		MedicationName: strings.TrimSpace(out.MedicationName),
		Candidates:     out.Candidates,
		Language:       parseLanguage(out.Language, req.Language),
	}, nil
}

func parseFlowKind(intent string) (contractx.FlowKind, error) {
	switch contractx.FlowKind(strings.TrimSpace(strings.ToLower(intent))) {
	case contractx.FlowMedicationFacts:
		return contractx.FlowMedicationFacts, nil
	case contractx.FlowPrescriptionEligibility:
		return contractx.FlowPrescriptionEligibility, nil
	case contractx.FlowInventoryAndPrescription:
		return contractx.FlowInventoryAndPrescription, nil
	case contractx.FlowAdviceRequest:
		return contractx.FlowAdviceRequest, nil
	case contractx.FlowAmbiguous:
		return contractx.FlowAmbiguous, nil
	case contractx.FlowOther:
		return contractx.FlowOther, nil
	}
	return "", fmt.Errorf("%w: unsupported intent %q", contractx.ErrSchemaViolation, intent)
}

func parseLanguage(lang string, fallback contractx.Language) contractx.Language {
	switch strings.TrimSpace(strings.ToLower(lang)) {
	case "he", "hebrew":
		return contractx.LanguageHebrew
	case "en", "english":
		return contractx.LanguageEnglish
	}
	return fallback
}
