package parser

// Follow-up prompts per unresolved slot
var slotSuggestions = map[string]string{
	SlotSport:            "Please specify the sport you want to play",
	SlotTime:             "Please specify the time you want to play",
	SlotVenue:            "Please specify a venue or location",
	SlotParticipants:     "Please specify how many players you expect",
	SlotAlternativeVenue: "The venue is booked during that time, try another venue or time slot",
}

// adviseMissing maps unresolved slots onto slot names and prompts, in stable
// order: sport, time, venue, participants. The participant slot is only
// reported when the sport is also unknown; with a sport resolved a default
// headcount always exists.
func adviseMissing(res *resolution) (missing []string, suggestions []string) {
	missing = []string{}
	suggestions = []string{}

	add := func(slot string) {
		missing = append(missing, slot)
		suggestions = append(suggestions, slotSuggestions[slot])
	}

	if res.sportID == "" {
		add(SlotSport)
	}
	if res.span == nil {
		add(SlotTime)
	}
	if res.venue == nil {
		add(SlotVenue)
	}
	if res.sportID == "" && !res.participants.explicit {
		add(SlotParticipants)
	}
	return missing, suggestions
}
