// Package compose renders approved content into final reply text. The
// template composer is fully deterministic: factual replies are short
// attribute lists, not prose, and no fact outside the approved fields can
// appear.
package compose

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

var labels = map[contractx.Language]map[string]string{
	contractx.LanguageEnglish: {
		contractx.FieldMedicationName:       "Medication",
		contractx.FieldActiveIngredient:     "Active ingredient",
		contractx.FieldDoseAmount:           "Dose",
		contractx.FieldFrequency:            "Frequency",
		contractx.FieldMaxDaily:             "Daily limit",
		contractx.FieldUsageInstructions:    "Usage",
		contractx.FieldSafetyInstructions:   "Safety",
		contractx.FieldQuantity:             "Availability",
		contractx.FieldRequiresPrescription: "Requires prescription",
		contractx.FieldUserHasPrescription:  "Prescription on file",
	},
	contractx.LanguageHebrew: {
		contractx.FieldMedicationName:       "תרופה",
		contractx.FieldActiveIngredient:     "חומר פעיל",
		contractx.FieldDoseAmount:           "מינון",
		contractx.FieldFrequency:            "תדירות",
		contractx.FieldMaxDaily:             "מקסימום יומי",
		contractx.FieldUsageInstructions:    "הוראות שימוש",
		contractx.FieldSafetyInstructions:   "בטיחות",
		contractx.FieldQuantity:             "זמינות",
		contractx.FieldRequiresPrescription: "נדרש מרשם",
		contractx.FieldUserHasPrescription:  "מרשם רשום",
	},
}

// TemplateComposer renders replies from fixed templates with no model
// call. It is the fallback composer and the reference for what a reply may
// contain.
type TemplateComposer struct{}

func NewTemplateComposer() TemplateComposer {
	return TemplateComposer{}
}

func (c TemplateComposer) Compose(_ context.Context, req contractx.ComposeRequest) (string, error) {
	lines, err := c.render(req.Content)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// ComposeStream delivers the reply line by line, in order and exactly once.
func (c TemplateComposer) ComposeStream(ctx context.Context, req contractx.ComposeRequest, emit func(chunk string) error) error {
	lines, err := c.render(req.Content)
	if err != nil {
		return err
	}
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i < len(lines)-1 {
			line += "\n"
		}
		if err := emit(line); err != nil {
			return err
		}
	}
	return nil
}

func (c TemplateComposer) render(content contractx.ApprovedContent) ([]string, error) {
	if content.Mode != contractx.ModeFactual {
		text := strings.TrimSpace(content.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: approved content has no text", contractx.ErrValidation)
		}
		return []string{text}, nil
	}

	if len(content.FieldOrder) == 0 {
		return nil, fmt.Errorf("%w: factual content has no fields", contractx.ErrValidation)
	}

	lines := make([]string, 0, len(content.FieldOrder))
	for _, key := range content.FieldOrder {
		value, ok := content.Fields[key]
		if !ok {
			continue
		}
		label := labels[content.Language][key]
		if label == "" {
			label = labels[contractx.LanguageEnglish][key]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, formatValue(key, value, content.Language)))
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: factual content rendered empty", contractx.ErrValidation)
	}
	return lines, nil
}

func formatValue(key string, value any, lang contractx.Language) string {
	switch v := value.(type) {
	case bool:
		if lang == contractx.LanguageHebrew {
			if v {
				return "כן"
			}
			return "לא"
		}
		if v {
			return "yes"
		}
		return "no"
	case int:
		if key == contractx.FieldQuantity {
			return formatQuantity(v, lang)
		}
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprint(v)
	}
}

// formatQuantity keeps the quantity-zero state visibly distinct from a
// missing medication.
func formatQuantity(quantity int, lang contractx.Language) string {
	if lang == contractx.LanguageHebrew {
		if quantity == 0 {
			return "אזל מהמלאי"
		}
		return fmt.Sprintf("%d במלאי", quantity)
	}
	if quantity == 0 {
		return "out of stock"
	}
	return fmt.Sprintf("%d in stock", quantity)
}
