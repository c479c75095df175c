// Package normalize provides deterministic text cleaners for the extractors
// Clean pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD then strip combining marks then NFC (transliterates accents)
// 3 Strip format chars ZWJ ZWNJ FEFF etc
// 4 Width fold fullwidth to ASCII
// 5 Map curly quotes and dash variants to ASCII forms
// 6 Strip URLs and @mentions, drop the # from hashtags
// 7 Map residual punctuation to space, collapse whitespace and trim
// Case is preserved so the capitalized-name heuristics keep working
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains for Clean
var cleanPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,
		)
	},
}

// pool of case folding chains for Fold
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
		)
	},
}

var (
	urlRe     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionRe = regexp.MustCompile(`@\w+`)
	rtRe      = regexp.MustCompile(`^(?i:rt)\s+`)
)

// punctuation kept verbatim by Clean; everything else non-alphanumeric maps to space
// quotes stay so quoted-span title extraction works, apostrophes stay inside names
func keepPunct(r rune) bool {
	switch r {
	case '\'', '-', '&', '"', '.', ',', '!', '?', '#':
		return true
	}
	return false
}

// Clean returns the cleaned form of raw following the pipeline above
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToValidUTF8(raw, "")

	tr := cleanPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	cleanPool.Put(tr)
	if err == nil {
		s = ns
	}

	s = mapQuotesAndDashes(s)
	s = urlRe.ReplaceAllString(s, " ")
	s = mentionRe.ReplaceAllString(s, " ")
	s = rtRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "#", "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case keepPunct(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return collapseSpaces(b.String())
}

// Fold returns a case folded form of s for matching contexts
// it does not strip anything, callers usually Clean first
func Fold(s string) string {
	if s == "" {
		return ""
	}
	tr := foldPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return ns
}

// mapQuotesAndDashes folds typographic quote and dash variants to ASCII
func mapQuotesAndDashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '‘', '’', 'ʼ', '`':
			b.WriteByte('\'')
		case '“', '”', '«', '»':
			b.WriteByte('"')
		case '‐', '‑', '‒', '–', '—', '―', '−':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
