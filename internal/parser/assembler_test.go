package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportbeacon/eventparse/internal/venues"
)

func TestClassifyEventType(t *testing.T) {
	c := newPatternCatalog()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"tournament", "basketball tournament saturday", EventTypeTournament},
		{"league counts as tournament", "join our summer league", EventTypeTournament},
		{"training", "soccer practice tomorrow", EventTypeTraining},
		{"french training", "entraînement de foot demain", EventTypeTraining},
		{"pickup", "pickup basketball tonight", EventTypePickup},
		{"casual", "casual tennis game", EventTypePickup},
		{"default is match", "basketball game tomorrow", EventTypeMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.classifyEventType(normalizeText(tt.text)))
		})
	}
}

func TestClassifySkill(t *testing.T) {
	c := newPatternCatalog()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"beginner", "beginners welcome", SkillBeginner},
		{"french beginner", "débutants bienvenus", SkillBeginner},
		{"intermediate", "intermediate players only", SkillIntermediate},
		{"advanced", "advanced players wanted", SkillAdvanced},
		{"french advanced", "joueurs avancés", SkillAdvanced},
		{"default is open", "basketball tomorrow", SkillAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.classifySkill(normalizeText(tt.text)))
		})
	}
}

func TestAssembleDraftSportDefaults(t *testing.T) {
	c := newPatternCatalog()

	res := &resolution{sportID: "basketball"}
	draft := c.assembleDraft("basketball tomorrow", res)

	assert.Equal(t, "basketball", draft.SportType)
	assert.Equal(t, EventTypeMatch, draft.EventType)
	assert.Equal(t, SkillAll, draft.SkillLevel)
	assert.Equal(t, 6, draft.MinParticipants)
	assert.Equal(t, 10, draft.MaxParticipants)
	assert.Equal(t, []string{"basketball"}, draft.Equipment)
	assert.Equal(t, "Basketball Match", draft.Title)
}

func TestAssembleDraftExplicitParticipantsWin(t *testing.T) {
	c := newPatternCatalog()

	res := &resolution{
		sportID:      "tennis",
		participants: participantsResult{min: 2, max: 2, explicit: true},
	}
	draft := c.assembleDraft("tennis for 2 people", res)

	assert.Equal(t, 2, draft.MinParticipants)
	assert.Equal(t, 2, draft.MaxParticipants)
}

func TestAssembleDraftVenueAndSpan(t *testing.T) {
	c := newPatternCatalog()

	start, end := march(21, 18, 0), march(21, 20, 0)
	res := &resolution{
		sportID: "basketball",
		span:    &timeSpan{start: start, end: end},
		venue: &venues.Candidate{
			ID:             "venue_001",
			Name:           "Cary Community Center",
			CompositeScore: 0.8,
		},
	}
	draft := c.assembleDraft("basketball tomorrow at cary community center", res)

	require.NotNil(t, draft.StartTime)
	require.NotNil(t, draft.EndTime)
	assert.Equal(t, start, *draft.StartTime)
	assert.Equal(t, end, *draft.EndTime)
	require.NotNil(t, draft.Venue)
	assert.Equal(t, "venue_001", draft.Venue.ID)
	assert.InDelta(t, 0.8, draft.Venue.Score, 1e-9)
	assert.Equal(t, "Basketball Match at Cary Community Center", draft.Title)
	assert.Contains(t, draft.Description, "at Cary Community Center")
	assert.Contains(t, draft.Description, "Thursday, March 21 at 6:00 PM")
}

func TestAssembleDraftUnknownSport(t *testing.T) {
	c := newPatternCatalog()

	draft := c.assembleDraft("something tomorrow", &resolution{})

	assert.Empty(t, draft.SportType)
	assert.Zero(t, draft.MinParticipants)
	assert.Zero(t, draft.MaxParticipants)
	assert.Equal(t, []string{}, draft.Equipment)
	assert.Equal(t, "Sports Match", draft.Title)
	assert.Equal(t, "Join us for a sports match. Free to join.", draft.Description)
}

func TestAssembleDraftCostLine(t *testing.T) {
	c := newPatternCatalog()

	res := &resolution{
		sportID: "tennis",
		cost:    costResult{amount: 5.5, explicit: true},
	}
	draft := c.assembleDraft("tennis for $5.50", res)

	assert.InDelta(t, 5.5, draft.Cost, 1e-9)
	assert.Contains(t, draft.Description, "Cost: $5.50 per person.")
	assert.NotContains(t, draft.Description, "Free to join")
}
