package parser

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// extractSport walks the sport table in declaration order and returns the
// first canonical id whose pattern matches.
func (c *patternCatalog) extractSport(norm string, locale Locale) (string, bool) {
	for _, sp := range c.sports {
		if !localeMatches(sp.locale, locale) {
			continue
		}
		if sp.re.MatchString(norm) {
			return sp.id, true
		}
	}
	return "", false
}

// participantsResult carries an extracted or defaulted participant range
type participantsResult struct {
	min      int
	max      int
	explicit bool
}

// extractParticipants tries the participant patterns most specific first:
// "5v5" means five per side so the event holds twice that, "5-8 players" is
// taken literally, "10 people" is a headcount ceiling with min at 80% of it,
// and "team of 6" again doubles for the full event.
func (c *patternCatalog) extractParticipants(norm string) participantsResult {
	if m := c.participantsVersus.FindStringSubmatch(norm); m != nil {
		if n := atoiSafe(m[1]); n > 0 {
			return participantsResult{min: n, max: 2 * n, explicit: true}
		}
	}
	if m := c.participantsRange.FindStringSubmatch(norm); m != nil {
		lo, hi := atoiSafe(m[1]), atoiSafe(m[2])
		if lo > 0 && hi > 0 {
			if hi < lo {
				lo, hi = hi, lo
			}
			return participantsResult{min: lo, max: hi, explicit: true}
		}
	}
	if m := c.participantsCount.FindStringSubmatch(norm); m != nil {
		if n := atoiSafe(m[1]); n > 0 {
			return participantsResult{
				min:      int(math.Ceil(0.8 * float64(n))),
				max:      n,
				explicit: true,
			}
		}
	}
	if m := c.participantsTeam.FindStringSubmatch(norm); m != nil {
		if n := atoiSafe(m[1]); n > 0 {
			return participantsResult{min: n, max: 2 * n, explicit: true}
		}
	}
	return participantsResult{}
}

// costResult carries an extracted cost. Absent cost defaults to zero without
// counting as extracted.
type costResult struct {
	amount   float64
	explicit bool
}

// extractCost finds an explicit price or a "free" marker
func (c *patternCatalog) extractCost(norm string) costResult {
	if m := c.costAmount.FindStringSubmatch(norm); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return costResult{amount: v, explicit: true}
		}
	}
	if m := c.costWord.FindStringSubmatch(norm); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return costResult{amount: v, explicit: true}
		}
	}
	if c.costFree.MatchString(norm) {
		return costResult{amount: 0, explicit: true}
	}
	return costResult{}
}

// extractVenueQuery pulls the venue-name span that follows a location
// preposition. Digits and stop words end the span, leading and trailing
// articles are dropped. Returns "" when the command names no venue.
func (c *patternCatalog) extractVenueQuery(norm string, locale Locale) string {
	preps := c.venuePreps[locale]
	if preps == nil {
		preps = c.venuePreps[LocaleEnglish]
	}

	words := strings.Fields(norm)
	for i, w := range words {
		if _, ok := preps[w]; !ok {
			continue
		}
		// spans under 3 characters are noise, keep scanning
		if span := c.collectVenueSpan(words[i+1:]); utf8.RuneCountInString(span) >= 3 {
			return span
		}
	}
	return ""
}

func (c *patternCatalog) collectVenueSpan(words []string) string {
	var span []string
	for _, w := range words {
		if containsDigit(w) {
			break
		}
		w = strings.TrimPrefix(w, "l'")
		if _, stop := c.venueStop[w]; stop {
			break
		}
		span = append(span, w)
	}
	for len(span) > 0 {
		if _, ok := c.venueArticles[span[0]]; !ok {
			break
		}
		span = span[1:]
	}
	for len(span) > 0 {
		if _, ok := c.venueArticles[span[len(span)-1]]; !ok {
			break
		}
		span = span[:len(span)-1]
	}
	return strings.Join(span, " ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
