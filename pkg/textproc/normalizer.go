// Package textproc normalizes, tokenizes and filters Persian chat text.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer canonicalizes text before tokenization.
type Normalizer interface {
	Normalize(text string) string
}

// NopNormalizer returns its input unchanged.
type NopNormalizer struct{}

func (NopNormalizer) Normalize(text string) string { return text }

const zwnj = "\u200c"

var (
	prefixSpacing = regexp.MustCompile(`(^| )(ن?می) `)
	suffixSpacing = regexp.MustCompile(` (ها|های|هایی|هایم|هایت|هایش|تر|ترین|تری|ام|ات|اش|اند|ایم|اید)( |$)`)
	punctSpacing  = regexp.MustCompile(` +([.,!?:;،؛؟])`)
	zwnjRepeat    = regexp.MustCompile(`\x{200c}{2,}`)
	zwnjEdge      = regexp.MustCompile(`(^| )\x{200c}+|\x{200c}+( |$)`)
)

// PersianNormalizer unifies Arabic/Persian character variants, digits and
// spacing so that the same word is always spelled the same way.
type PersianNormalizer struct {
	// KeepDigits leaves Latin and Arabic-Indic digits untouched.
	KeepDigits bool
}

// NewPersianNormalizer returns a normalizer with default settings.
func NewPersianNormalizer() *PersianNormalizer {
	return &PersianNormalizer{}
}

// Normalize returns the canonical form of text. It is idempotent.
func (n *PersianNormalizer) Normalize(text string) string {
	t := transform.Chain(
		norm.NFKC,
		runes.Remove(runes.Predicate(isDiacritic)),
		runes.Map(n.unify),
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}

	out = collapseSpaces(out)
	out = zwnjRepeat.ReplaceAllString(out, zwnj)
	out = zwnjEdge.ReplaceAllString(out, "${1}${2}")
	out = joinAffixes(out)
	out = punctSpacing.ReplaceAllString(out, "${1}")
	return strings.TrimSpace(out)
}

// joinAffixes attaches detached prefixes and suffixes with a ZWNJ. A match
// consumes the space shared with the next affix, so chained suffixes take
// another pass.
func joinAffixes(s string) string {
	for {
		next := prefixSpacing.ReplaceAllString(s, "${1}${2}"+zwnj)
		next = suffixSpacing.ReplaceAllString(next, zwnj+"${1}${2}")
		if next == s {
			return s
		}
		s = next
	}
}

func (n *PersianNormalizer) unify(r rune) rune {
	switch {
	case r == '\u064a' || r == '\u0649': // Arabic yeh, alef maksura
		return '\u06cc'
	case r == '\u0643': // Arabic kaf
		return '\u06a9'
	case r == '\u201c' || r == '\u201d':
		return '"'
	case r == '%':
		return '\u066a'
	case n.KeepDigits:
		return r
	case r >= '0' && r <= '9':
		return '\u06f0' + (r - '0')
	case r >= '\u0660' && r <= '\u0669':
		return '\u06f0' + (r - '\u0660')
	}
	return r
}

// isDiacritic matches Arabic harakat, the superscript alef and tatweel.
func isDiacritic(r rune) bool {
	switch {
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670, r == 0x0640:
		return true
	}
	return false
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wasSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !wasSpace {
				b.WriteByte(' ')
				wasSpace = true
			}
			continue
		}
		b.WriteRune(r)
		wasSpace = false
	}
	return strings.TrimSpace(b.String())
}
