package llm

import (
	"context"
	"strings"
	"testing"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	promptx "github.com/eshvartz/pharmacy-agent/agent/prompt"
)

// The classifier prompt carries literal JSON braces, which the FString
// template treats as placeholders unless escaped. Render the embedded
// prompt exactly the way the compiled graph does to keep it formattable.
func TestClassifierPromptRendersThroughTemplate(t *testing.T) {
	t.Parallel()

	prompts := promptx.LoadPromptSet()
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(prompts.Classifier),
		schema.UserMessage("{input}"),
	)

	messages, err := template.Format(context.Background(), map[string]any{
		"input": `{"message":"Tell me about Paracetamol","language":"en"}`,
	})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(messages))
	}
	if !strings.Contains(messages[0].Content, `{"message": string, "language": "en"|"he"}`) {
		t.Fatalf("system prompt lost its literal JSON schema:\n%s", messages[0].Content)
	}
	if strings.Contains(messages[0].Content, "{{") {
		t.Fatalf("escaped braces leaked into the rendered prompt:\n%s", messages[0].Content)
	}
	if !strings.Contains(messages[1].Content, "Paracetamol") {
		t.Fatalf("user payload not rendered: %q", messages[1].Content)
	}
}
