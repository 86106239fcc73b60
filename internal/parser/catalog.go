package parser

import (
	"regexp"
	"time"
)

// sportPattern binds one locale-tagged keyword pattern to a canonical sport
// identifier.
type sportPattern struct {
	id     string
	locale Locale
	re     *regexp.Regexp
}

// sportProfile carries the per-sport defaults applied when a command does not
// spell out participants or equipment.
type sportProfile struct {
	id         string
	display    string
	minPlayers int
	maxPlayers int
	equipment  []string
}

// relDayPattern maps a relative day marker onto a day offset from the
// reference instant.
type relDayPattern struct {
	locale Locale
	days   int
	re     *regexp.Regexp
}

// dayPartPattern maps a day-part word onto its default hour.
type dayPartPattern struct {
	locale Locale
	hour   int
	re     *regexp.Regexp
}

// keywordPattern maps a keyword scan onto a classification value.
type keywordPattern struct {
	value string
	re    *regexp.Regexp
}

// patternCatalog holds every compiled table the slot extractors dispatch
// over. It is built once per Parser and never mutated afterwards, so
// concurrent parses share it without locking. Declaration order inside each
// table is a contract: extractors walk the tables top to bottom and the
// first match wins.
type patternCatalog struct {
	localeOrder []Locale
	lexicons    map[Locale]map[string]struct{}

	sports   []sportPattern
	profiles map[string]sportProfile

	relDays     []relDayPattern
	nextWeekday map[Locale]*regexp.Regexp
	bareWeekday map[Locale]*regexp.Regexp
	weekdays    map[string]time.Weekday

	clockRange *regexp.Regexp
	time12     *regexp.Regexp
	time24     *regexp.Regexp
	timeHour24 *regexp.Regexp
	oclock     *regexp.Regexp
	bareHour   map[Locale]*regexp.Regexp
	dayParts   []dayPartPattern

	durationHours   *regexp.Regexp
	durationMinutes *regexp.Regexp

	participantsVersus *regexp.Regexp
	participantsRange  *regexp.Regexp
	participantsCount  *regexp.Regexp
	participantsTeam   *regexp.Regexp

	costAmount *regexp.Regexp
	costWord   *regexp.Regexp
	costFree   *regexp.Regexp

	venuePreps    map[Locale]map[string]struct{}
	venueStop     map[string]struct{}
	venueArticles map[string]struct{}

	eventTypes []keywordPattern
	skills     []keywordPattern
}

func newPatternCatalog() *patternCatalog {
	c := &patternCatalog{
		localeOrder: []Locale{LocaleEnglish, LocaleSpanish, LocaleFrench},
	}

	c.lexicons = map[Locale]map[string]struct{}{
		LocaleEnglish: wordSet("the", "a", "an", "at", "on", "in", "for", "with",
			"and", "to", "of", "is", "are", "this", "that", "next", "from",
			"tomorrow", "today", "tonight", "play", "game", "people", "players"),
		LocaleSpanish: wordSet("el", "la", "los", "las", "un", "una", "en", "de",
			"con", "para", "por", "y", "a", "es", "son", "este", "esta",
			"próximo", "proximo", "mañana", "hoy", "jugar", "juguemos",
			"partido", "personas", "jugadores", "gratis"),
		LocaleFrench: wordSet("le", "la", "les", "un", "une", "des", "à", "au",
			"aux", "de", "du", "avec", "pour", "et", "sur", "ce", "cette",
			"est", "sont", "demain", "aujourd'hui", "jouer", "match",
			"personnes", "joueurs", "gratuit", "prochain", "soir"),
	}

	// Sport keywords. Ordering matters twice over: sports listed earlier win
	// over later ones when a text names several, and within a sport the
	// English entry doubles as the cross-locale fallback since sport
	// loanwords travel between languages.
	c.sports = []sportPattern{
		{"basketball", LocaleEnglish, regexp.MustCompile(`\b(?:basketball|bball|hoops)\b`)},
		{"basketball", LocaleSpanish, regexp.MustCompile(`\b(?:baloncesto|básquet|basquet|básquetbol|basquetbol)\b`)},
		{"basketball", LocaleFrench, regexp.MustCompile(`\b(?:basket-ball|basketball|basket)\b`)},
		{"soccer", LocaleEnglish, regexp.MustCompile(`\b(?:soccer|football|footy)\b`)},
		{"soccer", LocaleSpanish, regexp.MustCompile(`\b(?:fútbol|futbol)\b`)},
		{"soccer", LocaleFrench, regexp.MustCompile(`\b(?:football|foot)\b`)},
		{"tennis", LocaleEnglish, regexp.MustCompile(`\btennis\b`)},
		{"tennis", LocaleSpanish, regexp.MustCompile(`\btenis\b`)},
		{"tennis", LocaleFrench, regexp.MustCompile(`\btennis\b`)},
		{"volleyball", LocaleEnglish, regexp.MustCompile(`\b(?:volleyball|volley)\b`)},
		{"volleyball", LocaleSpanish, regexp.MustCompile(`\b(?:voleibol|vóley|voley|volibol)\b`)},
		{"volleyball", LocaleFrench, regexp.MustCompile(`\b(?:volley-ball|volleyball|volley)\b`)},
		{"badminton", LocaleEnglish, regexp.MustCompile(`\bbadminton\b`)},
		{"badminton", LocaleSpanish, regexp.MustCompile(`\b(?:bádminton|badminton)\b`)},
		{"badminton", LocaleFrench, regexp.MustCompile(`\bbadminton\b`)},
		{"running", LocaleEnglish, regexp.MustCompile(`\b(?:running|jogging|jog|run)\b`)},
		{"running", LocaleSpanish, regexp.MustCompile(`\b(?:correr|carrera|trotar|footing)\b`)},
		{"running", LocaleFrench, regexp.MustCompile(`\b(?:course|courir|jogging|footing)\b`)},
		{"swimming", LocaleEnglish, regexp.MustCompile(`\b(?:swimming|swim)\b`)},
		{"swimming", LocaleSpanish, regexp.MustCompile(`\b(?:natación|natacion|nadar)\b`)},
		{"swimming", LocaleFrench, regexp.MustCompile(`\b(?:natation|nager)\b`)},
		{"cycling", LocaleEnglish, regexp.MustCompile(`\b(?:cycling|biking|bike|bicycle)\b`)},
		{"cycling", LocaleSpanish, regexp.MustCompile(`\b(?:ciclismo|bicicleta|bici)\b`)},
		{"cycling", LocaleFrench, regexp.MustCompile(`\b(?:cyclisme|vélo|velo)\b`)},
	}

	c.profiles = map[string]sportProfile{
		"basketball": {"basketball", "Basketball", 6, 10, []string{"basketball"}},
		"soccer":     {"soccer", "Soccer", 10, 22, []string{"soccer ball", "shin guards"}},
		"tennis":     {"tennis", "Tennis", 2, 4, []string{"tennis racket", "tennis balls"}},
		"volleyball": {"volleyball", "Volleyball", 6, 12, []string{"volleyball", "net"}},
		"badminton":  {"badminton", "Badminton", 2, 4, []string{"badminton racket", "shuttlecock"}},
		"running":    {"running", "Running", 2, 30, []string{"running shoes"}},
		"swimming":   {"swimming", "Swimming", 2, 20, []string{"swimwear", "goggles"}},
		"cycling":    {"cycling", "Cycling", 2, 25, []string{"bicycle", "helmet"}},
	}

	// Relative day markers. Spanish "mañana" doubles as the word for morning;
	// the temporal resolver skips occurrences already claimed by a day-part
	// match before treating it as "tomorrow".
	c.relDays = []relDayPattern{
		{LocaleEnglish, 0, regexp.MustCompile(`\b(?:today|tonight)\b`)},
		{LocaleEnglish, 1, regexp.MustCompile(`\btomorrow\b`)},
		{LocaleSpanish, 0, regexp.MustCompile(`\bhoy\b|\besta (?:noche|tarde)\b`)},
		{LocaleSpanish, 1, regexp.MustCompile(`\bmañana\b`)},
		{LocaleFrench, 0, regexp.MustCompile(`aujourd'hui|\bce soir\b`)},
		{LocaleFrench, 1, regexp.MustCompile(`\bdemain\b`)},
	}

	c.weekdays = map[string]time.Weekday{
		"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
		"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
		"sunday": time.Sunday,
		"lunes": time.Monday, "martes": time.Tuesday, "miércoles": time.Wednesday,
		"miercoles": time.Wednesday, "jueves": time.Thursday, "viernes": time.Friday,
		"sábado": time.Saturday, "sabado": time.Saturday, "domingo": time.Sunday,
		"lundi": time.Monday, "mardi": time.Tuesday, "mercredi": time.Wednesday,
		"jeudi": time.Thursday, "vendredi": time.Friday, "samedi": time.Saturday,
		"dimanche": time.Sunday,
	}

	const weekdaysEN = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
	const weekdaysES = `lunes|martes|miércoles|miercoles|jueves|viernes|sábado|sabado|domingo`
	const weekdaysFR = `lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche`

	c.nextWeekday = map[Locale]*regexp.Regexp{
		LocaleEnglish: regexp.MustCompile(`\bnext\s+(` + weekdaysEN + `)\b`),
		LocaleSpanish: regexp.MustCompile(`\b(?:pr[oó]ximo\s+)(` + weekdaysES + `)\b`),
		LocaleFrench:  regexp.MustCompile(`\b(` + weekdaysFR + `)\s+prochain\b`),
	}
	c.bareWeekday = map[Locale]*regexp.Regexp{
		LocaleEnglish: regexp.MustCompile(`\b(` + weekdaysEN + `)\b`),
		LocaleSpanish: regexp.MustCompile(`\b(` + weekdaysES + `)\b`),
		LocaleFrench:  regexp.MustCompile(`\b(` + weekdaysFR + `)\b`),
	}

	// Clock expressions. A bare "N to M" range only counts as a time when at
	// least one side carries a time signal (minutes, meridiem or the French
	// h form); otherwise "5-7 players" would read as seven in the evening.
	c.clockRange = regexp.MustCompile(`\b(\d{1,2})(?::([0-5]\d)|(h)([0-5]\d)?)?\s*(am|pm)?\s*(?:to|till|until|hasta|à|a|-|–)\s*(\d{1,2})(?::([0-5]\d)|(h)([0-5]\d)?)?\s*(am|pm)?\b`)
	c.time12 = regexp.MustCompile(`\b(\d{1,2})(?::([0-5]\d))?\s*(am|pm)\b`)
	c.time24 = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	c.timeHour24 = regexp.MustCompile(`\b([01]?\d|2[0-3])h([0-5]\d)?\b`)
	c.oclock = regexp.MustCompile(`\b(\d{1,2})\s*o'?clock\b`)
	c.bareHour = map[Locale]*regexp.Regexp{
		LocaleEnglish: regexp.MustCompile(`\bat\s+(\d{1,2})\b`),
		LocaleSpanish: regexp.MustCompile(`\ba las?\s+(\d{1,2})\b`),
		LocaleFrench:  regexp.MustCompile(`(?:^|\s)à\s+(\d{1,2})\b`),
	}

	// Day parts. French après-midi is listed before midi so the longer word
	// wins; the Spanish morning forms deliberately require an article to stay
	// clear of bare "mañana".
	c.dayParts = []dayPartPattern{
		{LocaleEnglish, 9, regexp.MustCompile(`\bmorning\b`)},
		{LocaleEnglish, 12, regexp.MustCompile(`\bnoon\b|\bmidday\b`)},
		{LocaleEnglish, 15, regexp.MustCompile(`\bafternoon\b`)},
		{LocaleEnglish, 18, regexp.MustCompile(`\bevening\b|\btonight\b`)},
		{LocaleEnglish, 20, regexp.MustCompile(`\bnight\b`)},
		{LocaleSpanish, 9, regexp.MustCompile(`\b(?:por|de) la mañana\b`)},
		{LocaleSpanish, 12, regexp.MustCompile(`\bmediod[ií]a\b`)},
		{LocaleSpanish, 15, regexp.MustCompile(`\btarde\b`)},
		{LocaleSpanish, 20, regexp.MustCompile(`\bnoche\b`)},
		{LocaleFrench, 9, regexp.MustCompile(`\bmatin\b`)},
		{LocaleFrench, 15, regexp.MustCompile(`après-midi|apres-midi`)},
		{LocaleFrench, 12, regexp.MustCompile(`\bmidi\b`)},
		{LocaleFrench, 18, regexp.MustCompile(`\bsoir\b`)},
		{LocaleFrench, 20, regexp.MustCompile(`\bnuit\b`)},
	}

	c.durationHours = regexp.MustCompile(`\b(?:for|por|durante|pendant)\s+(\d{1,2}(?:\.\d)?)\s*(?:hours?|hrs?|horas?|heures?|h)\b`)
	c.durationMinutes = regexp.MustCompile(`\b(?:for|por|durante|pendant)\s+(\d{1,3})\s*(?:minutes?|mins?|minutos?)\b`)

	// Participant counts, most specific first: "5v5", "5-8 players",
	// "10 people", "team of 6".
	c.participantsVersus = regexp.MustCompile(`\b(\d{1,2})\s*(?:vs|v|x|contra|contre)\s*(\d{1,2})\b`)
	const peopleWords = `people|players|persons|participants|personas|jugadores|jugadoras|personnes|joueurs|joueuses`
	c.participantsRange = regexp.MustCompile(`\b(\d{1,2})\s*(?:-|–|to|a|à)\s*(\d{1,2})\s*(?:` + peopleWords + `)\b`)
	c.participantsCount = regexp.MustCompile(`\b(\d{1,3})\s*(?:` + peopleWords + `)\b`)
	// RE2 word boundaries are ASCII-only, so \b cannot sit next to "é".
	// Anchor on start-of-text or whitespace instead.
	c.participantsTeam = regexp.MustCompile(`(?:^|\s)(?:teams?\s+of|equipos?\s+de|[ée]quipes?\s+de)\s+(\d{1,2})\b`)

	c.costAmount = regexp.MustCompile(`[$€£]\s*(\d+(?:\.\d{1,2})?)`)
	c.costWord = regexp.MustCompile(`\b(\d+(?:\.\d{1,2})?)\s*(?:dollars?|bucks?|usd|euros?|eur|d[oó]lares?|pesos?)\b`)
	c.costFree = regexp.MustCompile(`\b(?:free|gratis|gratuito|gratuita|gratuit|gratuite)\b`)

	// Venue-name spans start after a location preposition and run while the
	// text still looks like a name: words without digits, cut at the first
	// stop word.
	c.venuePreps = map[Locale]map[string]struct{}{
		LocaleEnglish: wordSet("at", "in"),
		LocaleSpanish: wordSet("en"),
		LocaleFrench:  wordSet("à", "au", "dans"),
	}
	c.venueStop = wordSet(
		"tomorrow", "today", "tonight", "next", "this", "that", "on", "at", "in",
		"for", "with", "from", "until", "till", "to", "every", "am", "pm",
		"morning", "noon", "afternoon", "evening", "night", "free",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"hoy", "mañana", "esta", "este", "próximo", "proximo", "por", "para",
		"con", "hasta", "gratis", "noche", "tarde", "a",
		"lunes", "martes", "miércoles", "miercoles", "jueves", "viernes",
		"sábado", "sabado", "domingo",
		"demain", "aujourd'hui", "ce", "cette", "prochain", "pour", "avec",
		"gratuit", "soir", "matin", "midi", "nuit",
		"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche",
	)
	c.venueArticles = wordSet(
		"the", "a", "an", "el", "la", "los", "las", "un", "una",
		"le", "les", "une", "l'", "de", "del", "du", "des",
	)

	// Event classification, checked in this order; anything unmatched is a
	// regular match.
	c.eventTypes = []keywordPattern{
		{EventTypeTournament, regexp.MustCompile(`\b(?:tournament|torneo|tournoi|league|liga|ligue|championship|campeonato|championnat|cup|copa|coupe)\b`)},
		{EventTypeTraining, regexp.MustCompile(`\b(?:training|practice|entrenamiento|práctica|practica|entra[iî]nement)\b`)},
		{EventTypePickup, regexp.MustCompile(`\b(?:pickup|pick-up|casual|friendly|amistoso|informal)\b`)},
	}
	c.skills = []keywordPattern{
		{SkillBeginner, regexp.MustCompile(`\b(?:beginner|beginners|novice|principiante|principiantes|d[eé]butant|d[eé]butants)\b`)},
		{SkillIntermediate, regexp.MustCompile(`\b(?:intermediate|intermedio|interm[eé]diaire)\b`)},
		{SkillAdvanced, regexp.MustCompile(`\b(?:advanced|expert|avanzado)\b|\bavanc[eé]e?s?(?:\s|$)`)},
	}

	return c
}

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// localeMatches reports whether a table entry tagged with loc applies to the
// detected locale. English entries apply everywhere: sport loanwords and
// "6pm" show up in commands of every language.
func localeMatches(entry, detected Locale) bool {
	return entry == detected || entry == LocaleEnglish
}
