package policy

import (
	"reflect"
	"strings"
	"testing"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

func TestApplyUserNotFound(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request: contractx.FlowRequest{
			UserID:           "u999",
			DetectedLanguage: contractx.LanguageEnglish,
		},
		Termination: contractx.TerminationUserNotFound,
	}

	content := Apply(res)
	if content.Mode != contractx.ModeDeterministic {
		t.Fatalf("expected deterministic mode, got %s", content.Mode)
	}
	if !strings.Contains(content.Text, "u999") {
		t.Fatalf("rejection must echo the user id: %q", content.Text)
	}
}

func TestApplyMedicationNotFoundHebrew(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request:     contractx.FlowRequest{DetectedLanguage: contractx.LanguageHebrew},
		Termination: contractx.TerminationMedicationNotFound,
	}

	content := Apply(res)
	if content.Mode != contractx.ModeDeterministic {
		t.Fatalf("expected deterministic mode, got %s", content.Mode)
	}
	if content.Language != contractx.LanguageHebrew {
		t.Fatalf("expected Hebrew content, got %s", content.Language)
	}
	if !strings.Contains(content.Text, "התרופה") {
		t.Fatalf("expected Hebrew rejection, got %q", content.Text)
	}
}

func TestApplyAmbiguousUsesClarification(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request:       contractx.FlowRequest{DetectedLanguage: contractx.LanguageEnglish},
		Termination:   contractx.TerminationAmbiguousEntity,
		Clarification: "Which medication do you mean: Ibuprofen 200, Ibuprofen 400?",
	}

	content := Apply(res)
	if content.Mode != contractx.ModeDeterministic {
		t.Fatalf("expected deterministic mode, got %s", content.Mode)
	}
	if content.Text != res.Clarification {
		t.Fatalf("expected the flow's clarifying question, got %q", content.Text)
	}

	res.Clarification = ""
	fallback := Apply(res)
	if !strings.Contains(fallback.Text, "Which medication") {
		t.Fatalf("expected generic clarifying question, got %q", fallback.Text)
	}
}

func TestApplyAdviceRefusal(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request:     contractx.FlowRequest{DetectedLanguage: contractx.LanguageEnglish},
		Kind:        contractx.FlowAdviceRequest,
		Termination: contractx.TerminationCompleted,
	}

	content := Apply(res)
	if content.Mode != contractx.ModeRefusal {
		t.Fatalf("expected refusal mode, got %s", content.Mode)
	}
	if !strings.Contains(content.Text, "pharmacist or doctor") {
		t.Fatalf("refusal must redirect to a professional, got %q", content.Text)
	}
}

func TestApplyOtherGetsCapabilityMessage(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request:     contractx.FlowRequest{DetectedLanguage: contractx.LanguageEnglish},
		Kind:        contractx.FlowOther,
		Termination: contractx.TerminationCompleted,
	}

	content := Apply(res)
	if content.Mode != contractx.ModeDeterministic {
		t.Fatalf("expected deterministic mode, got %s", content.Mode)
	}
	if !strings.Contains(content.Text, "internal database") {
		t.Fatalf("expected capability message, got %q", content.Text)
	}
}

func TestApplyFactualKeepsCanonicalOrder(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request:     contractx.FlowRequest{DetectedLanguage: contractx.LanguageEnglish},
		Kind:        contractx.FlowInventoryAndPrescription,
		Termination: contractx.TerminationCompleted,
		Fields: map[string]any{
			contractx.FieldUserHasPrescription:  true,
			contractx.FieldQuantity:             10,
			contractx.FieldRequiresPrescription: true,
		},
	}

	content := Apply(res)
	if content.Mode != contractx.ModeFactual {
		t.Fatalf("expected factual mode, got %s", content.Mode)
	}
	want := []string{
		contractx.FieldQuantity,
		contractx.FieldRequiresPrescription,
		contractx.FieldUserHasPrescription,
	}
	if !reflect.DeepEqual(content.FieldOrder, want) {
		t.Fatalf("unexpected field order: %v", content.FieldOrder)
	}
	if content.Fields[contractx.FieldQuantity] != 10 {
		t.Fatalf("quantity must pass through verbatim, got %v", content.Fields[contractx.FieldQuantity])
	}
}

func TestApplyScrubsAdvisoryText(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request:     contractx.FlowRequest{DetectedLanguage: contractx.LanguageEnglish},
		Kind:        contractx.FlowMedicationFacts,
		Termination: contractx.TerminationCompleted,
		Fields: map[string]any{
			contractx.FieldMedicationName:    "Paracetamol",
			contractx.FieldUsageInstructions: "I recommend this for you every morning.",
		},
	}

	content := Apply(res)
	got, _ := content.Fields[contractx.FieldUsageInstructions].(string)
	if strings.Contains(strings.ToLower(got), "recommend") {
		t.Fatalf("advisory text must be scrubbed, got %q", got)
	}
	if !strings.Contains(got, "consult a pharmacist or doctor") {
		t.Fatalf("expected the redirect line, got %q", got)
	}
	if content.Fields[contractx.FieldMedicationName] != "Paracetamol" {
		t.Fatalf("clean fields must pass through, got %v", content.Fields[contractx.FieldMedicationName])
	}
}

func TestApplyDefaultsToEnglish(t *testing.T) {
	t.Parallel()

	res := &contractx.FlowResult{
		Request:     contractx.FlowRequest{DetectedLanguage: contractx.Language("fr")},
		Termination: contractx.TerminationMedicationNotFound,
	}

	content := Apply(res)
	if content.Language != contractx.LanguageEnglish {
		t.Fatalf("unknown language must fall back to English, got %s", content.Language)
	}
}
