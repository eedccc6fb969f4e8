package services

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

var detector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Chinese,
			lingua.Japanese,
			lingua.French,
			lingua.German,
			lingua.Spanish,
		).
		Build()
})

// DetectLanguage guesses the primary language of a post body and records it
// as an ISO 639-1 code; "unknown" when there is not enough signal.
func DetectLanguage(content string) string {
	if language, ok := detector().DetectLanguageOf(content); ok {
		return language.IsoCode639_1().String()
	}
	return "unknown"
}
