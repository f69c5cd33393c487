// Package lang classifies the language of a nutrition-facts panel
// from recognized text.
//
// Each supported language maps to an ordered set of lowercase keyword
// strings that commonly appear on nutrition panels in that language.
// The table is static, read-only and safe for concurrent use.
package lang

import (
	"encoding/json"
	"strings"
)

// Language identifies one of the supported label languages.
type Language int

// Supported languages, in fixed enumeration order. The order is part
// of the scoring contract: ties in Detect resolve to the earliest
// language, and English is the fallback for empty input.
const (
	English Language = iota
	German
	French
	Spanish
	Italian
	Dutch
)

var names = [...]string{
	English: "english",
	German:  "german",
	French:  "french",
	Spanish: "spanish",
	Italian: "italian",
	Dutch:   "dutch",
}

// String returns the lowercase language name.
func (l Language) String() string {
	if int(l) < 0 || int(l) >= len(names) {
		return "unknown"
	}
	return names[l]
}

// MarshalJSON encodes the language as its lowercase name.
func (l Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// keywords maps each language to panel-indicating substrings. All
// entries must be lowercase; matching is case-insensitive substring
// containment.
var keywords = [...][]string{
	English: {
		"nutrition facts",
		"calories",
		"serving size",
		"total fat",
		"saturated fat",
		"cholesterol",
		"sodium",
		"carbohydrate",
		"dietary fiber",
		"protein",
	},
	German: {
		"nährwertangaben",
		"nährwerte",
		"brennwert",
		"fett",
		"gesättigte fettsäuren",
		"kohlenhydrate",
		"zucker",
		"ballaststoffe",
		"eiweiß",
		"salz",
	},
	French: {
		"valeurs nutritionnelles",
		"énergie",
		"matières grasses",
		"acides gras saturés",
		"glucides",
		"sucres",
		"fibres alimentaires",
		"protéines",
		"sel",
	},
	Spanish: {
		"información nutricional",
		"valor energético",
		"grasas",
		"grasas saturadas",
		"hidratos de carbono",
		"azúcares",
		"fibra alimentaria",
		"proteínas",
		"sal",
	},
	Italian: {
		"dichiarazione nutrizionale",
		"valori nutrizionali",
		"energia",
		"grassi",
		"acidi grassi saturi",
		"carboidrati",
		"zuccheri",
		"fibre",
		"proteine",
		"sale",
	},
	Dutch: {
		"voedingswaarde",
		"energie",
		"vetten",
		"verzadigde vetzuren",
		"koolhydraten",
		"suikers",
		"voedingsvezels",
		"eiwitten",
		"zout",
	},
}

// All returns the supported languages in enumeration order.
func All() []Language {
	out := make([]Language, len(names))
	for i := range names {
		out[i] = Language(i)
	}
	return out
}

// Keywords returns the panel keywords for l. The returned slice is
// shared; callers must not modify it.
func (l Language) Keywords() []string {
	if int(l) < 0 || int(l) >= len(keywords) {
		return nil
	}
	return keywords[l]
}

// Detect returns the language whose keywords occur most often across
// the given texts. Every occurrence counts: a keyword appearing in
// three strings contributes three, intentionally unlike
// CountDistinct. Ties resolve to the earlier language in enumeration
// order; empty input returns English.
func Detect(texts []string) Language {
	best := English
	bestScore := -1
	for _, l := range All() {
		score := 0
		for _, text := range texts {
			lower := strings.ToLower(text)
			for _, kw := range l.Keywords() {
				if strings.Contains(lower, kw) {
					score++
				}
			}
		}
		if score > bestScore {
			best = l
			bestScore = score
		}
	}
	return best
}

// CountDistinct returns how many of l's keywords appear in at least
// one of the given texts. Each keyword counts at most once no matter
// how many texts contain it.
func (l Language) CountDistinct(texts []string) int {
	count := 0
	for _, kw := range l.Keywords() {
		for _, text := range texts {
			if strings.Contains(strings.ToLower(text), kw) {
				count++
				break
			}
		}
	}
	return count
}

// Matches reports whether the text contains at least one of l's
// keywords, case-insensitively.
func (l Language) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range l.Keywords() {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
