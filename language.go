package bramble

// Language is a display language. Its value is also the tile index of the
// language in a flags texture.
type Language uint8

const (
	LanguageFrench Language = iota
	LanguageEnglish
	LanguageJapanese
	LanguageGerman
	LanguageChineseSimplified
	LanguageItalian
	LanguageSpanish
	LanguageArabic
	LanguageGreek
	LanguageRussian
	LanguageSwedish
	LanguageChineseTraditional
	LanguagePortuguese
	LanguageKorean
)

var languageISO = [...]string{
	LanguageFrench:             "fr",
	LanguageEnglish:            "en",
	LanguageJapanese:           "ja",
	LanguageGerman:             "de",
	LanguageChineseSimplified:  "zh-Hans",
	LanguageItalian:            "it",
	LanguageSpanish:            "es",
	LanguageArabic:             "ar",
	LanguageGreek:              "el",
	LanguageRussian:            "ru",
	LanguageSwedish:            "sv",
	LanguageChineseTraditional: "zh-Hant",
	LanguagePortuguese:         "pt",
	LanguageKorean:             "ko",
}

// ISO returns the ISO code of the language.
func (l Language) ISO() string {
	if int(l) < len(languageISO) {
		return languageISO[l]
	}
	return "en"
}

func (l Language) String() string { return l.ISO() }

// LanguageFromISO returns the language of an ISO code, English when the
// code is unknown.
func LanguageFromISO(code string) Language {
	for l, iso := range languageISO {
		if iso == code {
			return Language(l)
		}
	}
	return LanguageEnglish
}

// LanguageSource gives the current display language.
type LanguageSource interface {
	Language() Language
}

// StringTable holds the localized strings of every language, by key.
type StringTable map[Language]map[string]string

// Lookup returns a StringLookup reading the language given by src.
func (st StringTable) Lookup(src LanguageSource) StringLookup {
	return func(key string) (string, bool) {
		s, ok := st[src.Language()][key]
		return s, ok
	}
}
