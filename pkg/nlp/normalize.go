package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText приводит текст к упрощённому виду для сравнения:
// - нижний регистр
// - заменяет все не-буквенно-цифровые символы на пробелы ("+" и "#" сохраняются ради C++/C#)
// - схлопывает пробелы
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeSkill нормализует навык, чтобы "Node.js" и "node js" считались одним навыком.
func NormalizeSkill(skill string) string {
	return NormalizeText(skill)
}

// AnalysisText joins the free-text fields of an analysis summary the way the
// skill extractor expects them: description, matching analysis, recommendation.
func AnalysisText(description, matchingAnalysis, recommendation string) string {
	return description + " " + matchingAnalysis + " " + recommendation
}
