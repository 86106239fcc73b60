package parser

import (
	"strings"
	"unicode"
)

// localeMinHits is the minimum number of lexicon hits needed before a
// non-default locale wins detection.
const localeMinHits = 3

// normalizeText lowercases a command, normalizes apostrophes and soft
// punctuation, and collapses whitespace. Every extractor works on this form.
func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "’", "'")
	text = strings.Map(func(r rune) rune {
		switch r {
		case ',', '!', '?', ';':
			return ' '
		}
		return r
	}, text)
	// sentence periods go, decimal points stay
	text = strings.ReplaceAll(text, ". ", " ")
	text = strings.TrimSuffix(text, ".")
	return strings.Join(strings.Fields(text), " ")
}

// tokenize splits normalized text into words, keeping apostrophes and
// hyphens inside words (aujourd'hui, pick-up).
func tokenize(norm string) []string {
	return strings.FieldsFunc(norm, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

// detectLocale picks the working locale by counting stop-word hits per
// lexicon. The highest count wins if it reaches the minimum threshold; ties
// go to the earlier locale in declaration order. The second return reports
// whether any locale cleared the threshold; the caller falls back to its
// default when none did.
func (c *patternCatalog) detectLocale(norm string) (Locale, bool) {
	tokens := tokenize(norm)

	best := LocaleEnglish
	bestHits := 0
	for _, loc := range c.localeOrder {
		lexicon := c.lexicons[loc]
		hits := 0
		for _, tok := range tokens {
			if _, ok := lexicon[tok]; ok {
				hits++
			}
		}
		if hits > bestHits {
			best = loc
			bestHits = hits
		}
	}

	if bestHits < localeMinHits {
		return LocaleEnglish, false
	}
	return best, true
}

// parseLocale validates a caller-supplied locale hint
func parseLocale(hint string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(hint))) {
	case LocaleEnglish:
		return LocaleEnglish, true
	case LocaleSpanish:
		return LocaleSpanish, true
	case LocaleFrench:
		return LocaleFrench, true
	}
	return LocaleEnglish, false
}
