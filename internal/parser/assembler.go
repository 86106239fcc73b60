package parser

import (
	"fmt"
	"strings"
)

// Display labels per event type, used by the title and description templates
var eventTypeLabels = map[string]string{
	EventTypeMatch:      "Match",
	EventTypeTraining:   "Training Session",
	EventTypeTournament: "Tournament",
	EventTypePickup:     "Pickup Game",
	EventTypeLeague:     "League",
}

// classifyEventType scans the ordered keyword table; anything unmatched is a
// regular match.
func (c *patternCatalog) classifyEventType(norm string) string {
	for _, kp := range c.eventTypes {
		if kp.re.MatchString(norm) {
			return kp.value
		}
	}
	return EventTypeMatch
}

// classifySkill scans the skill keyword table; the default is open to all
func (c *patternCatalog) classifySkill(norm string) string {
	for _, kp := range c.skills {
		if kp.re.MatchString(norm) {
			return kp.value
		}
	}
	return SkillAll
}

// assembleDraft merges the slot extractions with the per-sport defaults and
// fills title and description from fixed templates, so a draft is always
// presentable even when half the slots are missing.
func (c *patternCatalog) assembleDraft(norm string, res *resolution) EventDraft {
	draft := EventDraft{
		EventType:    c.classifyEventType(norm),
		SkillLevel:   c.classifySkill(norm),
		Cost:         res.cost.amount,
		Requirements: []string{},
		Equipment:    []string{},
	}

	profile, hasProfile := c.profiles[res.sportID]
	if hasProfile {
		draft.SportType = profile.id
		draft.Equipment = append(draft.Equipment, profile.equipment...)
	}

	switch {
	case res.participants.explicit:
		draft.MinParticipants = res.participants.min
		draft.MaxParticipants = res.participants.max
	case hasProfile:
		draft.MinParticipants = profile.minPlayers
		draft.MaxParticipants = profile.maxPlayers
	}

	if res.span != nil {
		start, end := res.span.start, res.span.end
		draft.StartTime = &start
		draft.EndTime = &end
	}

	if res.venue != nil {
		draft.Venue = &VenueRef{
			ID:    res.venue.ID,
			Name:  res.venue.Name,
			Score: res.venue.CompositeScore,
		}
	}

	draft.Title = buildTitle(profile, hasProfile, draft)
	draft.Description = buildDescription(profile, hasProfile, draft)
	return draft
}

func buildTitle(profile sportProfile, hasProfile bool, draft EventDraft) string {
	sport := "Sports"
	if hasProfile {
		sport = profile.display
	}
	label := eventTypeLabels[draft.EventType]
	if label == "" {
		label = eventTypeLabels[EventTypeMatch]
	}
	title := sport + " " + label
	if draft.Venue != nil {
		title += " at " + draft.Venue.Name
	}
	return title
}

func buildDescription(profile sportProfile, hasProfile bool, draft EventDraft) string {
	sport := "sports"
	if hasProfile {
		sport = strings.ToLower(profile.display)
	}
	label := strings.ToLower(eventTypeLabels[draft.EventType])
	if label == "" {
		label = "match"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Join us for a %s %s", sport, label)
	if draft.Venue != nil {
		fmt.Fprintf(&b, " at %s", draft.Venue.Name)
	}
	b.WriteString(".")
	if draft.StartTime != nil {
		fmt.Fprintf(&b, " Happening on %s.", draft.StartTime.Format("Monday, January 2 at 3:04 PM"))
	}
	if draft.MaxParticipants > 0 {
		fmt.Fprintf(&b, " Looking for %d-%d players.", draft.MinParticipants, draft.MaxParticipants)
	}
	if draft.Cost > 0 {
		fmt.Fprintf(&b, " Cost: $%.2f per person.", draft.Cost)
	} else {
		b.WriteString(" Free to join.")
	}
	return b.String()
}
