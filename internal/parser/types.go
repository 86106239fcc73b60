package parser

import (
	"time"

	"github.com/sportbeacon/eventparse/internal/venues"
)

// Locale identifies a supported command language
type Locale string

// Supported locales, in detection tie-break order
const (
	LocaleEnglish Locale = "en"
	LocaleSpanish Locale = "es"
	LocaleFrench  Locale = "fr"
)

// Event types an utterance can describe
const (
	EventTypeMatch      = "match"
	EventTypeTraining   = "training"
	EventTypeTournament = "tournament"
	EventTypePickup     = "pickup"
	EventTypeLeague     = "league"
)

// Skill levels a draft can carry
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
	SkillAll          = "all"
)

// Slot names reported in ParseResult.MissingInfo. The advisor emits them in
// this order: sport, time, venue, participants.
const (
	SlotSport            = "sport type"
	SlotTime             = "time"
	SlotVenue            = "venue"
	SlotParticipants     = "participant count"
	SlotAlternativeVenue = "alternative venue"
)

// Error codes reported in ParseResult.Errors
const (
	ErrCodeValidation    = "validation_error"
	ErrCodeVenueConflict = "venue_conflict"
)

// Command represents one natural-language event request. Commands are
// transient; nothing here is persisted.
type Command struct {
	Text       string          `json:"text"`
	UserID     string          `json:"userId,omitempty"`
	Timestamp  time.Time       `json:"timestamp,omitempty"`
	LocaleHint string          `json:"localeHint,omitempty"`
	Context    *CommandContext `json:"context,omitempty"`
}

// CommandContext carries optional hints supplied with a command
type CommandContext struct {
	Geo          *venues.Geo `json:"geo,omitempty"`
	Preferences  []string    `json:"preferences,omitempty"`
	RecentEvents []string    `json:"recentEvents,omitempty"`
}

// VenueRef represents the resolved venue attached to a draft
type VenueRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// EventDraft is the partially-or-fully resolved event assembled from a
// command. Unresolved optional fields stay empty rather than failing the
// parse.
type EventDraft struct {
	SportType       string     `json:"sportType,omitempty"`
	EventType       string     `json:"eventType"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	Venue           *VenueRef  `json:"venueRef,omitempty"`
	MinParticipants int        `json:"minParticipants,omitempty"`
	MaxParticipants int        `json:"maxParticipants,omitempty"`
	SkillLevel      string     `json:"skillLevel"`
	Cost            float64    `json:"cost"`
	Requirements    []string   `json:"requirements"`
	Equipment       []string   `json:"equipment"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
}

// ParseResult is the full outcome of parsing one command. It is always
// best-effort: unparseable input produces a low-confidence result with
// guidance, never an error.
type ParseResult struct {
	Success     bool       `json:"success"`
	Confidence  float64    `json:"confidence"`
	Draft       EventDraft `json:"draft"`
	MissingInfo []string   `json:"missingInfo"`
	Suggestions []string   `json:"suggestions"`
	Errors      []string   `json:"errors"`
	Language    string     `json:"language"`
	AIEnhanced  bool       `json:"aiEnhanced"`
}
