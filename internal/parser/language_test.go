package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases and trims",
			in:   "  Basketball Tomorrow at 6PM!  ",
			want: "basketball tomorrow at 6pm",
		},
		{
			name: "soft punctuation becomes spaces",
			in:   "Let's play, tomorrow. At 6pm.",
			want: "let's play tomorrow at 6pm",
		},
		{
			name: "decimal points survive",
			in:   "Entry is $5.50 today.",
			want: "entry is $5.50 today",
		},
		{
			name: "curly apostrophe normalized",
			in:   "Let’s play tennis",
			want: "let's play tennis",
		},
		{
			name: "accents untouched",
			in:   "Fútbol mañana, a las 5",
			want: "fútbol mañana a las 5",
		},
		{
			name: "blank collapses to empty",
			in:   "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeText(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("let's play pick-up basketball aujourd'hui at 6pm")
	assert.Equal(t, []string{"let's", "play", "pick-up", "basketball", "aujourd'hui", "at", "6pm"}, tokens)
}

func TestDetectLocale(t *testing.T) {
	c := newPatternCatalog()

	tests := []struct {
		name     string
		text     string
		want     Locale
		detected bool
	}{
		{
			name:     "english stop words",
			text:     "let's play basketball tomorrow at the park with friends",
			want:     LocaleEnglish,
			detected: true,
		},
		{
			name:     "spanish stop words",
			text:     "juguemos fútbol mañana en el parque para 10 personas",
			want:     LocaleSpanish,
			detected: true,
		},
		{
			name:     "french stop words",
			text:     "on va jouer au tennis demain soir avec des joueurs",
			want:     LocaleFrench,
			detected: true,
		},
		{
			name:     "too few hits falls back to english",
			text:     "basketball 6pm",
			want:     LocaleEnglish,
			detected: false,
		},
		{
			name:     "ties break in declaration order",
			text:     "the at for el en de",
			want:     LocaleEnglish,
			detected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, detected := c.detectLocale(normalizeText(tt.text))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.detected, detected)
		})
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want Locale
		ok   bool
	}{
		{"english", "en", LocaleEnglish, true},
		{"uppercase", "EN", LocaleEnglish, true},
		{"padded", " fr ", LocaleFrench, true},
		{"spanish", "es", LocaleSpanish, true},
		{"unsupported", "de", LocaleEnglish, false},
		{"empty", "", LocaleEnglish, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLocale(tt.hint)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
