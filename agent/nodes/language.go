package nodes

import contractx "github.com/eshvartz/pharmacy-agent/agent/contract"

// DetectLanguage picks the reply language from the raw message: any rune in
// the Hebrew block selects Hebrew, everything else falls back to English.
func DetectLanguage(text string) contractx.Language {
	for _, r := range text {
		if r >= 0x0590 && r <= 0x05FF {
			return contractx.LanguageHebrew
		}
	}
	return contractx.LanguageEnglish
}
