package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

func TestComposeDeterministicText(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	reply, err := c.Compose(context.Background(), contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode:     contractx.ModeDeterministic,
			Language: contractx.LanguageEnglish,
			Text:     "  Which medication do you mean?  ",
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if reply != "Which medication do you mean?" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestComposeEmptyTextFails(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	_, err := c.Compose(context.Background(), contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode: contractx.ModeRefusal,
			Text: "   ",
		},
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestComposeFactualRendering(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	reply, err := c.Compose(context.Background(), contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode:     contractx.ModeFactual,
			Language: contractx.LanguageEnglish,
			Fields: map[string]any{
				contractx.FieldQuantity:             10,
				contractx.FieldRequiresPrescription: true,
				contractx.FieldUserHasPrescription:  false,
			},
			FieldOrder: []string{
				contractx.FieldQuantity,
				contractx.FieldRequiresPrescription,
				contractx.FieldUserHasPrescription,
			},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := strings.Join([]string{
		"Availability: 10 in stock",
		"Requires prescription: yes",
		"Prescription on file: no",
	}, "\n")
	if reply != want {
		t.Fatalf("unexpected reply:\n%s", reply)
	}
}

func TestComposeFactualQuantityZero(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	reply, err := c.Compose(context.Background(), contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode:       contractx.ModeFactual,
			Language:   contractx.LanguageEnglish,
			Fields:     map[string]any{contractx.FieldQuantity: 0},
			FieldOrder: []string{contractx.FieldQuantity},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if reply != "Availability: out of stock" {
		t.Fatalf("quantity zero must render as out of stock, got %q", reply)
	}
}

func TestComposeFactualHebrewLabels(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	reply, err := c.Compose(context.Background(), contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode:       contractx.ModeFactual,
			Language:   contractx.LanguageHebrew,
			Fields:     map[string]any{contractx.FieldRequiresPrescription: true},
			FieldOrder: []string{contractx.FieldRequiresPrescription},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if reply != "נדרש מרשם: כן" {
		t.Fatalf("unexpected Hebrew reply: %q", reply)
	}
}

func TestComposeFactualWithoutFieldsFails(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	_, err := c.Compose(context.Background(), contractx.ComposeRequest{
		Content: contractx.ApprovedContent{Mode: contractx.ModeFactual},
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestComposeStreamMatchesCompose(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	req := contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode:     contractx.ModeFactual,
			Language: contractx.LanguageEnglish,
			Fields: map[string]any{
				contractx.FieldMedicationName:   "Paracetamol",
				contractx.FieldActiveIngredient: "Acetaminophen",
			},
			FieldOrder: []string{
				contractx.FieldMedicationName,
				contractx.FieldActiveIngredient,
			},
		},
	}

	full, err := c.Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	var chunks []string
	err = c.ComposeStream(context.Background(), req, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("ComposeStream() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected one chunk per line, got %d", len(chunks))
	}
	if strings.Join(chunks, "") != full {
		t.Fatalf("streamed reply differs from Compose: %q vs %q", strings.Join(chunks, ""), full)
	}
}

func TestComposeStreamStopsOnCancel(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emitted := 0
	err := c.ComposeStream(ctx, contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode: contractx.ModeDeterministic,
			Text: "hello",
		},
	}, func(string) error {
		emitted++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if emitted != 0 {
		t.Fatalf("nothing may be emitted after cancellation, got %d chunks", emitted)
	}
}

func TestComposeStreamPropagatesEmitError(t *testing.T) {
	t.Parallel()

	c := NewTemplateComposer()
	emitErr := errors.New("client gone")

	err := c.ComposeStream(context.Background(), contractx.ComposeRequest{
		Content: contractx.ApprovedContent{
			Mode: contractx.ModeDeterministic,
			Text: "hello",
		},
	}, func(string) error {
		return emitErr
	})
	if !errors.Is(err, emitErr) {
		t.Fatalf("expected emit error, got %v", err)
	}
}
