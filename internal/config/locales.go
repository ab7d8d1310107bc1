package config

const (
	LangEN = "en"
	LangES = "es"
	LangRU = "ru"
)

var SupportedLanguages = []string{LangEN, LangES, LangRU}

func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
