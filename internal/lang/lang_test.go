package lang

import (
	"strings"
	"testing"
)

func TestDetectEmptyInputDefaultsToEnglish(t *testing.T) {
	if got := Detect(nil); got != English {
		t.Errorf("Detect(nil) = %v, want English", got)
	}
	if got := Detect([]string{}); got != English {
		t.Errorf("Detect(empty) = %v, want English", got)
	}
}

func TestDetectGerman(t *testing.T) {
	texts := []string{"Nährwertangaben", "Brennwert 2000 kJ", "Zucker 12g"}
	if got := Detect(texts); got != German {
		t.Errorf("Detect = %v, want German", got)
	}
}

func TestDetectCountsEveryOccurrence(t *testing.T) {
	// "calories" in three strings scores English three times, which
	// must beat a single German hit.
	texts := []string{"calories 100", "calories 200", "calories from fat", "zucker"}
	if got := Detect(texts); got != English {
		t.Errorf("Detect = %v, want English", got)
	}
}

func TestDetectTieBreaksByEnumerationOrder(t *testing.T) {
	// One hit each for English and German; English comes first in
	// enumeration order and must win, every time.
	texts := []string{"calories", "brennwert"}
	for i := 0; i < 10; i++ {
		if got := Detect(texts); got != English {
			t.Fatalf("run %d: Detect = %v, want English", i, got)
		}
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	texts := []string{"energie", "sucres", "protéines"}
	first := Detect(texts)
	for i := 0; i < 20; i++ {
		if got := Detect(texts); got != first {
			t.Fatalf("run %d: Detect = %v, previously %v", i, got, first)
		}
	}
}

func TestCountDistinctDeduplicates(t *testing.T) {
	// "calories" appearing in three texts counts once.
	texts := []string{"calories 100", "CALORIES per serving", "calories"}
	if got := English.CountDistinct(texts); got != 1 {
		t.Errorf("CountDistinct = %d, want 1", got)
	}
}

func TestCountDistinctMultipleKeywords(t *testing.T) {
	texts := []string{"Nutrition Facts", "Serving Size 2 cups", "Total Fat 8g", "Sodium 160mg"}
	if got := English.CountDistinct(texts); got != 4 {
		t.Errorf("CountDistinct = %d, want 4", got)
	}
}

func TestMatchesCaseInsensitive(t *testing.T) {
	if !English.Matches("TOTAL FAT 8G") {
		t.Error("expected match for uppercase keyword text")
	}
	if English.Matches("ingredients: water, salt") {
		t.Error("unexpected match for non-panel text")
	}
}

func TestKeywordsAreLowercase(t *testing.T) {
	for _, l := range All() {
		for _, kw := range l.Keywords() {
			if kw != strings.ToLower(kw) {
				t.Errorf("%v keyword %q is not lowercase", l, kw)
			}
		}
	}
}
