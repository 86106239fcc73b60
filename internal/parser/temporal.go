package parser

import (
	"regexp"
	"strconv"
	"time"
)

const (
	// defaultStartHour is used when a command names a day but no clock time.
	defaultStartHour = 18
	// defaultDuration is applied when no end time or duration is given.
	defaultDuration = 2 * time.Hour
)

// timeSpan is the absolute window resolved from a command
type timeSpan struct {
	start       time.Time
	end         time.Time
	explicitEnd bool
}

// clockReading is a clock match before meridiem fixing
type clockReading struct {
	hour     int
	minute   int
	meridiem string // "am", "pm" or ""
	hour24   bool   // French "18h30" form, already 24h
}

// resolve converts a reading to 24h. An explicit meridiem wins, then a
// day-part word in the same command ("7 in the morning"), and finally the
// scheduling heuristic that a bare 1-7 means evening.
func (r clockReading) resolve(dayPartHour int) (int, int) {
	h := r.hour
	switch {
	case r.hour24:
	case r.meridiem == "am":
		if h == 12 {
			h = 0
		}
	case r.meridiem == "pm":
		if h < 12 {
			h += 12
		}
	case dayPartHour >= 12:
		if h < 12 {
			h += 12
		}
	case dayPartHour >= 0:
	case h >= 1 && h <= 7:
		h += 12
	}
	return h, r.minute
}

// matchSpan is a [start,end) byte range already claimed by another pattern
type matchSpan [2]int

func overlapsAny(start, end int, blocked []matchSpan) bool {
	for _, b := range blocked {
		if start < b[1] && end > b[0] {
			return true
		}
	}
	return false
}

// firstMatch returns the submatch indexes of the first occurrence of re in
// norm that stays clear of every blocked span.
func firstMatch(re *regexp.Regexp, norm string, blocked []matchSpan) []int {
	for _, loc := range re.FindAllStringSubmatchIndex(norm, -1) {
		if !overlapsAny(loc[0], loc[1], blocked) {
			return loc
		}
	}
	return nil
}

// group extracts submatch n from indexes returned by firstMatch
func group(norm string, loc []int, n int) string {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return ""
	}
	return norm[loc[2*n]:loc[2*n+1]]
}

// resolveTemporal turns the clock and day expressions of a command into an
// absolute window. It is a pure function of (text, now, locale): the only
// clock involved is the supplied reference instant, and its location is the
// timezone everything resolves in.
func (c *patternCatalog) resolveTemporal(norm string, now time.Time, locale Locale) *timeSpan {
	var blocked []matchSpan

	// Durations first: "for 2h" must not read as the French two-o'clock.
	var duration time.Duration
	if loc := c.durationHours.FindStringSubmatchIndex(norm); loc != nil {
		if v, err := strconv.ParseFloat(group(norm, loc, 1), 64); err == nil && v > 0 {
			duration = time.Duration(v * float64(time.Hour))
			blocked = append(blocked, matchSpan{loc[0], loc[1]})
		}
	} else if loc := c.durationMinutes.FindStringSubmatchIndex(norm); loc != nil {
		if v := atoiSafe(group(norm, loc, 1)); v > 0 {
			duration = time.Duration(v) * time.Minute
			blocked = append(blocked, matchSpan{loc[0], loc[1]})
		}
	}

	// Day parts next. Their spans shield the Spanish morning forms from the
	// relative-day scan (mañana is both "tomorrow" and "morning") and they
	// steer meridiem guessing for bare hours.
	dayPartHour := -1
	for _, dp := range c.dayParts {
		if !localeMatches(dp.locale, locale) {
			continue
		}
		if loc := firstMatch(dp.re, norm, blocked); loc != nil {
			dayPartHour = dp.hour
			blocked = append(blocked, matchSpan{loc[0], loc[1]})
			break
		}
	}

	startClock, endClock := c.extractClocks(norm, locale, blocked)
	days, dayFound := c.extractDayOffset(norm, now, locale, blocked)

	if startClock == nil && dayPartHour < 0 && !dayFound {
		return nil
	}

	base := now.AddDate(0, 0, days)
	hour, minute := defaultStartHour, 0
	switch {
	case startClock != nil:
		hour, minute = startClock.resolve(dayPartHour)
	case dayPartHour >= 0:
		hour = dayPartHour
	}
	start := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, now.Location())

	span := &timeSpan{start: start}
	switch {
	case endClock != nil:
		eh, em := endClock.resolve(dayPartHour)
		end := time.Date(base.Year(), base.Month(), base.Day(), eh, em, 0, 0, now.Location())
		// "11 to 1" crosses noon, "10pm to 12" crosses midnight
		if !end.After(start) {
			end = end.Add(12 * time.Hour)
		}
		if !end.After(start) {
			end = start.Add(defaultDuration)
		}
		span.end = end
		span.explicitEnd = true
	case duration > 0:
		span.end = start.Add(duration)
		span.explicitEnd = true
	default:
		span.end = start.Add(defaultDuration)
	}
	return span
}

// extractClocks finds the start clock and, for explicit ranges, the end
// clock. Patterns are tried in fixed order; the first kind that matches
// wins.
func (c *patternCatalog) extractClocks(norm string, locale Locale, blocked []matchSpan) (*clockReading, *clockReading) {
	// An explicit range resolves both ends at once, but only when a side
	// carries a real time signal; "5-7 players" is not a schedule.
	if loc := firstMatch(c.clockRange, norm, blocked); loc != nil {
		s := clockReading{hour: atoiSafe(group(norm, loc, 1))}
		e := clockReading{hour: atoiSafe(group(norm, loc, 6))}
		sMinC, sH24, sMinH, sMer := group(norm, loc, 2), group(norm, loc, 3), group(norm, loc, 4), group(norm, loc, 5)
		eMinC, eH24, eMinH, eMer := group(norm, loc, 7), group(norm, loc, 8), group(norm, loc, 9), group(norm, loc, 10)
		signal := sMinC != "" || sH24 != "" || sMer != "" || eMinC != "" || eH24 != "" || eMer != ""
		if signal && s.hour <= 23 && e.hour <= 23 {
			s.minute = atoiSafe(firstNonEmpty(sMinC, sMinH))
			e.minute = atoiSafe(firstNonEmpty(eMinC, eMinH))
			s.hour24 = sH24 != ""
			e.hour24 = eH24 != ""
			s.meridiem, e.meridiem = sMer, eMer
			// one meridiem covers the whole range: "6 to 8pm" is 6pm-8pm
			if s.meridiem == "" && !s.hour24 {
				s.meridiem = e.meridiem
			}
			if e.meridiem == "" && !e.hour24 {
				e.meridiem = s.meridiem
			}
			return &s, &e
		}
	}

	if loc := firstMatch(c.time12, norm, blocked); loc != nil {
		return &clockReading{
			hour:     atoiSafe(group(norm, loc, 1)),
			minute:   atoiSafe(group(norm, loc, 2)),
			meridiem: group(norm, loc, 3),
		}, nil
	}
	if loc := firstMatch(c.time24, norm, blocked); loc != nil {
		return &clockReading{
			hour:   atoiSafe(group(norm, loc, 1)),
			minute: atoiSafe(group(norm, loc, 2)),
		}, nil
	}
	if loc := firstMatch(c.timeHour24, norm, blocked); loc != nil {
		return &clockReading{
			hour:   atoiSafe(group(norm, loc, 1)),
			minute: atoiSafe(group(norm, loc, 2)),
			hour24: true,
		}, nil
	}
	if loc := firstMatch(c.oclock, norm, blocked); loc != nil {
		if h := atoiSafe(group(norm, loc, 1)); h >= 1 && h <= 23 {
			return &clockReading{hour: h}, nil
		}
	}
	for _, re := range localeRegexps(c.bareHour, locale) {
		if loc := firstMatch(re, norm, blocked); loc != nil {
			if h := atoiSafe(group(norm, loc, 1)); h >= 1 && h <= 23 {
				return &clockReading{hour: h}, nil
			}
		}
	}
	return nil, nil
}

// extractDayOffset finds the day a command refers to, as an offset in days
// from the reference instant.
func (c *patternCatalog) extractDayOffset(norm string, now time.Time, locale Locale, blocked []matchSpan) (int, bool) {
	for _, rd := range c.relDays {
		if !localeMatches(rd.locale, locale) {
			continue
		}
		if loc := firstMatch(rd.re, norm, blocked); loc != nil {
			return rd.days, true
		}
	}

	for _, re := range localeRegexps(c.nextWeekday, locale) {
		if loc := firstMatch(re, norm, blocked); loc != nil {
			if wd, ok := c.weekdays[group(norm, loc, 1)]; ok {
				return daysUntil(now.Weekday(), wd), true
			}
		}
	}
	for _, re := range localeRegexps(c.bareWeekday, locale) {
		if loc := firstMatch(re, norm, blocked); loc != nil {
			if wd, ok := c.weekdays[group(norm, loc, 1)]; ok {
				return daysUntil(now.Weekday(), wd), true
			}
		}
	}
	return 0, false
}

// daysUntil returns the offset to the next occurrence of target. Naming the
// current weekday means next week, not today.
func daysUntil(today, target time.Weekday) int {
	d := (int(target) - int(today) + 7) % 7
	if d == 0 {
		d = 7
	}
	return d
}

// localeRegexps returns the detected locale's pattern plus the English one
// as cross-locale fallback.
func localeRegexps(m map[Locale]*regexp.Regexp, locale Locale) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, 2)
	if re := m[locale]; re != nil {
		res = append(res, re)
	}
	if locale != LocaleEnglish {
		if re := m[LocaleEnglish]; re != nil {
			res = append(res, re)
		}
	}
	return res
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
