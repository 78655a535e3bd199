package summarizer

import "strings"

// languageNames maps language codes to the full names used in prompts.
var languageNames = map[string]string{
	"en":    "english",
	"zh":    "chinese",
	"zh-cn": "chinese",
	"zh-tw": "traditional chinese",
	"es":    "spanish",
	"fr":    "french",
	"de":    "german",
	"ja":    "japanese",
	"ko":    "korean",
	"ru":    "russian",
	"pt":    "portuguese",
	"it":    "italian",
	"ar":    "arabic",
	"hi":    "hindi",
	"th":    "thai",
	"vi":    "vietnamese",
}

// LanguageName converts a language code to its full name. Full names
// pass through, and unknown values are assumed to already be a name.
func LanguageName(code string) string {
	lower := strings.ToLower(code)
	if name, ok := languageNames[lower]; ok {
		return name
	}
	for _, name := range languageNames {
		if name == lower {
			return name
		}
	}
	return lower
}
