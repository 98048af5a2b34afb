// Package policy post-processes a FlowResult into the approved content
// envelope. The filter is a pure function: its output contains only
// DB-sourced structured fields and fixed templates, never text from any
// other source.
package policy

import (
	"errors"
	"fmt"
	"strings"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

// fieldOrder is the canonical rendering order for structured fields.
var fieldOrder = []string{
	contractx.FieldMedicationName,
	contractx.FieldActiveIngredient,
	contractx.FieldDoseAmount,
	contractx.FieldFrequency,
	contractx.FieldMaxDaily,
	contractx.FieldUsageInstructions,
	contractx.FieldSafetyInstructions,
	contractx.FieldQuantity,
	contractx.FieldRequiresPrescription,
	contractx.FieldUserHasPrescription,
}

// advisoryMarkers flag injected text that reads as personalized advice.
// DB-sourced label text stays clear of these on purpose.
var advisoryMarkers = []string{
	"you should take",
	"you should use",
	"i recommend",
	"we recommend",
	"is safe for you",
	"best for you",
	"suitable for you",
	"you can safely",
	"כדאי לך",
	"מומלץ לך",
	"אני ממליץ",
	"בטוח עבורך",
}

// Apply converts a FlowResult into ApprovedContent. Rules are applied in
// order and the first match wins the mode tag.
func Apply(res *contractx.FlowResult) contractx.ApprovedContent {
	lang := normalizeLanguage(res.Request.DetectedLanguage)

	if res.Terminated() {
		return contractx.ApprovedContent{
			Mode:     contractx.ModeDeterministic,
			Language: lang,
			Text:     deterministicMessage(res, lang),
		}
	}

	if res.Kind == contractx.FlowAdviceRequest {
		return contractx.ApprovedContent{
			Mode:     contractx.ModeRefusal,
			Language: lang,
			Text:     refusalMessage(lang),
		}
	}

	if res.Kind == contractx.FlowOther {
		return contractx.ApprovedContent{
			Mode:     contractx.ModeDeterministic,
			Language: lang,
			Text:     capabilityMessage(lang),
		}
	}

	fields, order := scrubFields(res.Fields, lang)
	return contractx.ApprovedContent{
		Mode:       contractx.ModeFactual,
		Language:   lang,
		Fields:     fields,
		FieldOrder: order,
	}
}

func deterministicMessage(res *contractx.FlowResult, lang contractx.Language) string {
	switch res.Termination {
	case contractx.TerminationUserNotFound:
		return userNotFoundMessage(lang, res.Request.UserID)
	case contractx.TerminationMedicationNotFound:
		return medicationNotFoundMessage(lang)
	case contractx.TerminationAmbiguousEntity:
		if q := strings.TrimSpace(res.Clarification); q != "" {
			return q
		}
		return clarifyingQuestion(lang)
	}
	return capabilityMessage(lang)
}

// scrubFields passes DB-sourced attributes and booleans through verbatim,
// except that any string value reading as advisory is stripped and replaced
// with the redirect-to-professional line.
func scrubFields(fields map[string]any, lang contractx.Language) (map[string]any, []string) {
	approved := make(map[string]any, len(fields))
	order := make([]string, 0, len(fields))
	for _, key := range fieldOrder {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if s, isString := value.(string); isString {
			if err := checkAdvisory(s); errors.Is(err, contractx.ErrAdvisoryContent) {
				value = redirectLine(lang)
			}
		}
		approved[key] = value
		order = append(order, key)
	}
	return approved, order
}

// checkAdvisory reports ErrAdvisoryContent when the text reads as
// personalized advice. The error never leaves this package.
func checkAdvisory(text string) error {
	lowered := strings.ToLower(text)
	for _, marker := range advisoryMarkers {
		if strings.Contains(lowered, marker) {
			return fmt.Errorf("%w: marker %q", contractx.ErrAdvisoryContent, marker)
		}
	}
	return nil
}

func normalizeLanguage(lang contractx.Language) contractx.Language {
	if lang == contractx.LanguageHebrew {
		return contractx.LanguageHebrew
	}
	return contractx.LanguageEnglish
}
