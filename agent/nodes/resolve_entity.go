package nodes

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
	toolx "github.com/eshvartz/pharmacy-agent/agent/tool"
	"github.com/eshvartz/pharmacy-agent/pharmacy"
)

// ResolveEntity pins down the medication name the lookup flows will use.
// The orchestrator never guesses: a missing name, multiple extracted
// candidates, or a partial match against several directory entries all
// force a clarifying question with zero tool calls. A single concrete name
// proceeds even when absent from the store; the tool call itself converts
// absence into the deterministic not-found outcome.
func ResolveEntity(ctx context.Context, in *GraphState, gateway *toolx.Gateway) (*GraphState, error) {
	if in.Result.Terminated() {
		return in, nil
	}

	switch in.Result.Kind {
	case contractx.FlowAdviceRequest, contractx.FlowOther:
		return in, nil
	case contractx.FlowAmbiguous:
		clarify(in, nil)
		return in, nil
	}

	name := strings.TrimSpace(in.Classification.MedicationName)
	candidates := dedupe(in.Classification.Candidates)
	if name == "" && len(candidates) == 1 {
		name = candidates[0]
	}
	if len(candidates) > 1 {
		clarify(in, candidates)
		return in, nil
	}
	if name == "" {
		clarify(in, nil)
		return in, nil
	}

	vocabulary, err := gateway.Vocabulary(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	match := pharmacy.MatchName(vocabulary, name, gateway.Normalizer())
	if len(match.Candidates) > 1 {
		clarify(in, match.Candidates)
		return in, nil
	}
	if match.Canonical != "" {
		name = match.Canonical
	}

	in.MedicationName = name
	return in, nil
}

func clarify(in *GraphState, candidates []string) {
	in.Result.Termination = contractx.TerminationAmbiguousEntity
	if len(candidates) > 1 {
		in.Result.Clarification = clarifyBetween(candidates, in.Result.Request.DetectedLanguage)
	}
}

func clarifyBetween(candidates []string, lang contractx.Language) string {
	joined := strings.Join(candidates, ", ")
	if lang == contractx.LanguageHebrew {
		return fmt.Sprintf("לאיזו תרופה התכוונת: %s?", joined)
	}
	return fmt.Sprintf("Which medication do you mean: %s?", joined)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
