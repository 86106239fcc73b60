package parser

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportbeacon/eventparse/internal/booking"
	"github.com/sportbeacon/eventparse/internal/enhance"
	"github.com/sportbeacon/eventparse/internal/venues"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

type stubDirectory struct {
	prefix    []venues.Venue
	all       []venues.Venue
	prefixErr error
	scanErr   error
}

func (d *stubDirectory) LookupByNamePrefix(ctx context.Context, query string) ([]venues.Venue, error) {
	return d.prefix, d.prefixErr
}

func (d *stubDirectory) ScanAll(ctx context.Context) ([]venues.Venue, error) {
	return d.all, d.scanErr
}

type stubStore struct {
	bookings []booking.Booking
	err      error
}

func (s *stubStore) FindOverlapping(ctx context.Context, venueID string, start, end time.Time) ([]booking.Booking, error) {
	return s.bookings, s.err
}

type stubEnhancer struct {
	result *enhance.Result
	err    error
	calls  int
}

func (e *stubEnhancer) Enhance(ctx context.Context, req enhance.Request) (*enhance.Result, error) {
	e.calls++
	return e.result, e.err
}

func newTestParser(resolver *venues.Resolver, checker *booking.Checker, enhancer enhance.Enhancer) *Parser {
	return New(resolver, checker, enhancer, Options{DefaultLocale: "en"}, logger.Nop())
}

func centralParkResolver() *venues.Resolver {
	dir := &stubDirectory{
		prefix: []venues.Venue{
			{ID: "venue_003", Name: "Central City Park", Latitude: 35.7880, Longitude: -78.7850},
		},
	}
	return venues.NewResolver(dir, venues.Config{}, logger.Nop())
}

func TestParseFullCommand(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "Basketball game tomorrow at 6pm for 10 people",
		Timestamp: refNow,
	})

	assert.True(t, res.Success)
	assert.InDelta(t, 0.75, res.Confidence, 1e-9)
	assert.Equal(t, "en", res.Language)
	assert.False(t, res.AIEnhanced)
	assert.Empty(t, res.Errors)

	assert.Equal(t, "basketball", res.Draft.SportType)
	assert.Equal(t, EventTypeMatch, res.Draft.EventType)
	require.NotNil(t, res.Draft.StartTime)
	require.NotNil(t, res.Draft.EndTime)
	assert.Equal(t, march(21, 18, 0), *res.Draft.StartTime)
	assert.Equal(t, march(21, 20, 0), *res.Draft.EndTime)
	assert.Equal(t, 8, res.Draft.MinParticipants)
	assert.Equal(t, 10, res.Draft.MaxParticipants)
	assert.Equal(t, []string{"basketball"}, res.Draft.Equipment)
	assert.Equal(t, "Basketball Match", res.Draft.Title)
	assert.Equal(t,
		"Join us for a basketball match. Happening on Thursday, March 21 at 6:00 PM. Looking for 8-10 players. Free to join.",
		res.Draft.Description)

	assert.Equal(t, []string{SlotVenue}, res.MissingInfo)
	assert.Equal(t, []string{"Please specify a venue or location"}, res.Suggestions)
}

func TestParseMissingSport(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "game tomorrow at 6pm for 10 people",
		Timestamp: refNow,
	})

	assert.False(t, res.Success)
	assert.InDelta(t, 0.45, res.Confidence, 1e-9)
	assert.Empty(t, res.Draft.SportType)
	assert.Equal(t, []string{SlotSport, SlotVenue}, res.MissingInfo)
	assert.Contains(t, res.Suggestions, "Please specify the sport you want to play")
	// participants were explicit, so the draft still carries them
	assert.Equal(t, 8, res.Draft.MinParticipants)
	assert.Equal(t, 10, res.Draft.MaxParticipants)
	assert.Equal(t, "Sports Match", res.Draft.Title)
}

func TestParseVenueResolution(t *testing.T) {
	p := newTestParser(centralParkResolver(), nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "basketball tomorrow at 6pm at central park",
		Timestamp: refNow,
	})

	assert.True(t, res.Success)
	assert.InDelta(t, 0.8, res.Confidence, 1e-9)
	assert.Empty(t, res.MissingInfo)
	assert.Empty(t, res.Errors)

	require.NotNil(t, res.Draft.Venue)
	assert.Equal(t, "venue_003", res.Draft.Venue.ID)
	assert.Equal(t, "Central City Park", res.Draft.Venue.Name)
	// similarity 12/17 against a neutral proximity of 0.5
	assert.InDelta(t, 0.6235, res.Draft.Venue.Score, 0.0005)
	assert.Equal(t, "Basketball Match at Central City Park", res.Draft.Title)
}

func TestParseVenueConflict(t *testing.T) {
	store := &stubStore{bookings: []booking.Booking{{
		ID:      "existing",
		VenueID: "venue_003",
		Start:   march(21, 17, 0),
		End:     march(21, 19, 0),
	}}}
	p := newTestParser(centralParkResolver(), booking.NewChecker(store, logger.Nop()), nil)

	res := p.Parse(context.Background(), Command{
		Text:      "basketball tomorrow at 6pm at central park",
		Timestamp: refNow,
	})

	// the conflict is advisory; the parse itself still succeeds
	assert.True(t, res.Success)
	assert.InDelta(t, 0.8, res.Confidence, 1e-9)
	assert.Equal(t, []string{ErrCodeVenueConflict}, res.Errors)
	assert.Equal(t, []string{SlotAlternativeVenue}, res.MissingInfo)
	require.Len(t, res.Suggestions, 1)
	assert.Contains(t, res.Suggestions[0], "booked")
}

func TestParseBookingStoreDownFailsOpen(t *testing.T) {
	store := &stubStore{err: errors.New("store offline")}
	p := newTestParser(centralParkResolver(), booking.NewChecker(store, logger.Nop()), nil)

	res := p.Parse(context.Background(), Command{
		Text:      "basketball tomorrow at 6pm at central park",
		Timestamp: refNow,
	})

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.MissingInfo)
}

func TestParseVenueDirectoryDown(t *testing.T) {
	dir := &stubDirectory{prefixErr: errors.New("directory offline")}
	p := newTestParser(venues.NewResolver(dir, venues.Config{}, logger.Nop()), nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "basketball tomorrow at 6pm at central park",
		Timestamp: refNow,
	})

	// the venue stays unresolved but the parse carries on
	assert.True(t, res.Success)
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)
	assert.Nil(t, res.Draft.Venue)
	assert.Equal(t, []string{SlotVenue}, res.MissingInfo)
	assert.Empty(t, res.Errors)
}

func TestParseGibberish(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "xyzzy blorp fnord",
		Timestamp: refNow,
	})

	assert.False(t, res.Success)
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{SlotSport, SlotTime, SlotVenue, SlotParticipants}, res.MissingInfo)
	assert.Len(t, res.Suggestions, 4)
	assert.Equal(t, "en", res.Language)
	assert.Nil(t, res.Draft.StartTime)
	assert.Equal(t, "Sports Match", res.Draft.Title)
}

func TestParseBlankInput(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		res := p.Parse(context.Background(), Command{Text: text, Timestamp: refNow})

		assert.False(t, res.Success)
		assert.Zero(t, res.Confidence)
		assert.Equal(t, []string{ErrCodeValidation}, res.Errors)
		assert.Empty(t, res.MissingInfo)
		assert.Empty(t, res.Suggestions)
		assert.Equal(t, "en", res.Language)
	}
}

func TestParseDeterministic(t *testing.T) {
	p := newTestParser(centralParkResolver(), nil, nil)
	cmd := Command{
		Text:      "basketball tomorrow at 6pm at central park for 10 people",
		Timestamp: refNow,
	}

	first := p.Parse(context.Background(), cmd)
	second := p.Parse(context.Background(), cmd)

	assert.Equal(t, first, second)
}

func TestParseLocaleHint(t *testing.T) {
	p := newTestParser(nil, nil, nil)
	text := "Basketball demain à 18h"

	hinted := p.Parse(context.Background(), Command{Text: text, Timestamp: refNow, LocaleHint: "fr"})
	assert.Equal(t, "fr", hinted.Language)
	require.NotNil(t, hinted.Draft.StartTime)
	assert.Equal(t, march(21, 18, 0), *hinted.Draft.StartTime)

	// without the hint the text has too few French stop words to detect,
	// so "demain" is not understood and the clock lands on today
	unhinted := p.Parse(context.Background(), Command{Text: text, Timestamp: refNow})
	assert.Equal(t, "en", unhinted.Language)
	require.NotNil(t, unhinted.Draft.StartTime)
	assert.Equal(t, march(20, 18, 0), *unhinted.Draft.StartTime)
}

func TestParseSpanishCommand(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "Juguemos fútbol mañana a las 5 en el parque central para 10 personas",
		Timestamp: refNow,
	})

	assert.True(t, res.Success)
	assert.Equal(t, "es", res.Language)
	assert.Equal(t, "soccer", res.Draft.SportType)
	require.NotNil(t, res.Draft.StartTime)
	assert.Equal(t, march(21, 17, 0), *res.Draft.StartTime)
	assert.Equal(t, 8, res.Draft.MinParticipants)
	assert.Equal(t, 10, res.Draft.MaxParticipants)
	assert.Equal(t, []string{SlotVenue}, res.MissingInfo)
}

func TestParseFrenchCommand(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "Tennis demain soir au stade municipal pour 4 joueurs",
		Timestamp: refNow,
	})

	assert.True(t, res.Success)
	assert.Equal(t, "fr", res.Language)
	assert.Equal(t, "tennis", res.Draft.SportType)
	require.NotNil(t, res.Draft.StartTime)
	assert.Equal(t, march(21, 18, 0), *res.Draft.StartTime)
	assert.Equal(t, 4, res.Draft.MaxParticipants)
}

func TestParseDefaultTimestamp(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	// a zero timestamp falls back to the current time; the relative day
	// still resolves against it
	res := p.Parse(context.Background(), Command{Text: "basketball tomorrow at 6pm"})

	assert.True(t, res.Success)
	require.NotNil(t, res.Draft.StartTime)
	assert.True(t, res.Draft.StartTime.After(time.Now().UTC()))
}

func TestParseEnhancement(t *testing.T) {
	cmd := Command{Text: "basketball tomorrow at 6pm", Timestamp: refNow}

	t.Run("replacement fields applied", func(t *testing.T) {
		enh := &stubEnhancer{result: &enhance.Result{
			Title:        "Hoops Night",
			Description:  "Come shoot around with us.",
			Requirements: []string{"bring water"},
		}}
		p := newTestParser(nil, nil, enh)

		res := p.Parse(context.Background(), cmd)

		assert.True(t, res.AIEnhanced)
		assert.Equal(t, "Hoops Night", res.Draft.Title)
		assert.Equal(t, "Come shoot around with us.", res.Draft.Description)
		assert.Equal(t, []string{"bring water"}, res.Draft.Requirements)
		assert.Equal(t, 1, enh.calls)
	})

	t.Run("partial result keeps template fields", func(t *testing.T) {
		enh := &stubEnhancer{result: &enhance.Result{Title: "Hoops Night"}}
		p := newTestParser(nil, nil, enh)

		res := p.Parse(context.Background(), cmd)

		assert.True(t, res.AIEnhanced)
		assert.Equal(t, "Hoops Night", res.Draft.Title)
		assert.Contains(t, res.Draft.Description, "Join us for a basketball match")
	})

	t.Run("error keeps template draft", func(t *testing.T) {
		enh := &stubEnhancer{err: errors.New("model unavailable")}
		p := newTestParser(nil, nil, enh)

		res := p.Parse(context.Background(), cmd)

		assert.False(t, res.AIEnhanced)
		assert.Equal(t, "Basketball Match", res.Draft.Title)
		assert.True(t, res.Success)
	})

	t.Run("nil result keeps template draft", func(t *testing.T) {
		enh := &stubEnhancer{}
		p := newTestParser(nil, nil, enh)

		res := p.Parse(context.Background(), cmd)

		assert.False(t, res.AIEnhanced)
		assert.Equal(t, "Basketball Match", res.Draft.Title)
	})

	t.Run("not called when the parse fails", func(t *testing.T) {
		enh := &stubEnhancer{result: &enhance.Result{Title: "Hoops Night"}}
		p := newTestParser(nil, nil, enh)

		res := p.Parse(context.Background(), Command{Text: "xyzzy blorp", Timestamp: refNow})

		assert.False(t, res.Success)
		assert.False(t, res.AIEnhanced)
		assert.Zero(t, enh.calls)
	})
}

func TestParseResultJSONShape(t *testing.T) {
	p := newTestParser(nil, nil, nil)

	res := p.Parse(context.Background(), Command{
		Text:      "Basketball game tomorrow at 6pm for 10 people",
		Timestamp: refNow,
	})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &top))
	for _, key := range []string{"success", "confidence", "draft", "missingInfo", "suggestions", "errors", "language", "aiEnhanced"} {
		assert.Contains(t, top, key)
	}
	// empty slices serialize as [], not null
	assert.JSONEq(t, `[]`, string(top["errors"]))

	var draft map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(top["draft"], &draft))
	assert.Contains(t, draft, "sportType")
	assert.Contains(t, draft, "startTime")
	assert.Contains(t, draft, "endTime")
	assert.NotContains(t, draft, "venueRef")

	// unresolved optional fields disappear instead of serializing zero values
	gibberish := p.Parse(context.Background(), Command{Text: "xyzzy blorp", Timestamp: refNow})
	raw, err = json.Marshal(gibberish)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &top))
	draft = nil // Unmarshal merges into a non-nil map; reset so stale keys from the first parse don't linger
	require.NoError(t, json.Unmarshal(top["draft"], &draft))
	assert.NotContains(t, draft, "sportType")
	assert.NotContains(t, draft, "startTime")
	assert.NotContains(t, draft, "venueRef")
	assert.JSONEq(t, `[]`, string(top["errors"]))
}

func TestParseConfidenceBounds(t *testing.T) {
	p := newTestParser(centralParkResolver(), nil, nil)

	texts := []string{
		"Basketball game tomorrow at 6pm for 10 people at central park for $5",
		"basketball tomorrow",
		"tennis",
		"xyzzy",
		"juguemos fútbol mañana gratis",
	}
	for _, text := range texts {
		res := p.Parse(context.Background(), Command{Text: text, Timestamp: refNow})
		assert.GreaterOrEqual(t, res.Confidence, 0.0, text)
		assert.LessOrEqual(t, res.Confidence, 1.0, text)
	}
}
