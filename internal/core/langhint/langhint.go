// Package langhint provides a coarse language hint used to pre-filter records.
// It counts letters per script and, for Latin text, checks for common English
// function words. Good enough as a gate, not a classifier
package langhint

import (
	"strings"
	"unicode"
)

// english function words that show up in nearly every english sentence
var englishHints = map[string]struct{}{
	"the": {}, "and": {}, "to": {}, "of": {}, "a": {}, "in": {}, "is": {},
	"for": {}, "that": {}, "this": {}, "it": {}, "on": {}, "was": {},
	"at": {}, "with": {}, "so": {}, "but": {}, "just": {}, "are": {},
	"be": {}, "he": {}, "she": {}, "they": {}, "you": {}, "i": {},
	"won": {}, "wins": {}, "best": {},
}

// Detect returns a best-effort BCP-47 code and a confidence in [0,1].
// Only "en" is ever reported with confidence; everything else comes back
// as the empty code with the latin share as confidence
func Detect(s string) (code string, confidence float64) {
	var latin, other, total int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		if unicode.In(r, unicode.Latin) {
			latin++
		} else {
			other++
		}
	}
	if total == 0 {
		return "", 0
	}

	latinShare := float64(latin) / float64(total)
	if latinShare < 0.9 {
		return "", latinShare
	}

	fields := strings.Fields(strings.ToLower(s))
	hits := 0
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'")
		if _, ok := englishHints[f]; ok {
			hits++
		}
	}

	// short texts get the benefit of the doubt, longer ones must show
	// at least one english function word
	if len(fields) >= 5 && hits == 0 {
		return "", latinShare
	}

	conf := latinShare
	if hits > 0 {
		conf = latinShare*0.5 + 0.5*minf(float64(hits)/3.0, 1.0)
		if conf > 1 {
			conf = 1
		}
	}
	return "en", conf
}

// English reports whether s is likely english text
func English(s string) bool {
	code, _ := Detect(s)
	return code == "en"
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
