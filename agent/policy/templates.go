package policy

import (
	"fmt"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
)

// Deterministic messages are fixed, language-keyed templates used for
// expected rejection and clarification outcomes. They never depend on the
// generation capability.

func userNotFoundMessage(lang contractx.Language, userID string) string {
	if lang == contractx.LanguageHebrew {
		return fmt.Sprintf("לא מצאתי את המשתמש במערכת (user_id: %s), ולכן לא אוכל להמשיך. אם יש לך user_id אחר, שלחי/שלח אותו בבקשה.", userID)
	}
	return fmt.Sprintf("I couldn't find this user in our system (user_id: %s), so I can't proceed. Please provide a valid user_id.", userID)
}

func medicationNotFoundMessage(lang contractx.Language) string {
	if lang == contractx.LanguageHebrew {
		return "מצטער/ת, לא מצאתי את שם התרופה במאגר הפנימי של בית המרקחת, ולכן אינני יכול/ה לספק מידע עליה. " +
			"אפשר לבדוק שוב עם איות מדויק (ובאנגלית אם יש), או לציין שם מסחרי."
	}
	return "Sorry — I couldn't find that medication in our internal pharmacy database, so I can't provide information about it. " +
		"Please confirm the exact spelling (and the generic/brand name)."
}

func clarifyingQuestion(lang contractx.Language) string {
	if lang == contractx.LanguageHebrew {
		return "על איזו תרופה מדובר? בבקשה ציין/ציני את שם התרופה המדויק."
	}
	return "Which medication do you mean? Please give the exact medication name."
}

func refusalMessage(lang contractx.Language) string {
	if lang == contractx.LanguageHebrew {
		return "מצטער/ת, אינני יכול/ה לתת המלצות או ייעוץ רפואי. לשאלות על התאמה אישית, פנה/פני לרוקח/ת או לרופא/ה."
	}
	return "Sorry — I can't give medical advice or recommendations. For guidance on what suits you, please speak with a pharmacist or doctor."
}

func capabilityMessage(lang contractx.Language) string {
	if lang == contractx.LanguageHebrew {
		return "אני יכול/ה לעזור עם מידע על תרופות מהמאגר הפנימי: פרטי תרופה, מלאי ודרישת מרשם. על מה תרצה/תרצי לשאול?"
	}
	return "I can help with information from our internal database: medication details, stock availability, and prescription requirements. What would you like to ask about?"
}

func redirectLine(lang contractx.Language) string {
	if lang == contractx.LanguageHebrew {
		return "לייעוץ אישי יש לפנות לרוקח/ת או לרופא/ה."
	}
	return "For personal guidance, please consult a pharmacist or doctor."
}

// FailureMessage is the single user-visible message for an upstream
// generation failure. Exposed for the transport layer.
func FailureMessage(lang contractx.Language) string {
	if lang == contractx.LanguageHebrew {
		return "מצטער/ת — אירעה שגיאה בעת יצירת התשובה. נסה/נסי שוב מאוחר יותר."
	}
	return "Sorry — I encountered an error while generating the response. Please try again later."
}
