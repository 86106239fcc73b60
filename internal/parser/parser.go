package parser

import (
	"context"
	"time"

	"github.com/sportbeacon/eventparse/internal/booking"
	"github.com/sportbeacon/eventparse/internal/enhance"
	"github.com/sportbeacon/eventparse/internal/venues"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

// resolution gathers every slot extraction for one command before assembly
type resolution struct {
	sportID      string
	span         *timeSpan
	venue        *venues.Candidate
	venueQuery   string
	participants participantsResult
	cost         costResult
}

// Options represents parser construction options
type Options struct {
	DefaultLocale string
}

// Parser turns free-text event commands into structured drafts. One Parser
// value serves concurrent calls: the catalog is immutable after construction
// and every parse builds its own state.
type Parser struct {
	catalog       *patternCatalog
	resolver      *venues.Resolver
	checker       *booking.Checker
	enhancer      enhance.Enhancer
	defaultLocale Locale
	logger        *logger.Logger
}

// New creates a Parser. The resolver may be nil when no venue directory is
// available, the checker may be nil to skip availability checks, and a nil
// enhancer defaults to the no-op implementation.
func New(resolver *venues.Resolver, checker *booking.Checker, enhancer enhance.Enhancer, opts Options, log *logger.Logger) *Parser {
	locale := LocaleEnglish
	if l, ok := parseLocale(opts.DefaultLocale); ok {
		locale = l
	}
	if enhancer == nil {
		enhancer = enhance.Noop{}
	}
	return &Parser{
		catalog:       newPatternCatalog(),
		resolver:      resolver,
		checker:       checker,
		enhancer:      enhancer,
		defaultLocale: locale,
		logger:        log.Named("parser"),
	}
}

// Parse resolves one command into a best-effort result. Unparseable text
// lowers confidence and fills MissingInfo instead of failing; the only
// fatal condition is blank input.
func (p *Parser) Parse(ctx context.Context, cmd Command) *ParseResult {
	norm := normalizeText(cmd.Text)
	if norm == "" {
		return &ParseResult{
			Draft:       emptyDraft(),
			MissingInfo: []string{},
			Suggestions: []string{},
			Errors:      []string{ErrCodeValidation},
			Language:    string(p.defaultLocale),
		}
	}

	locale := p.defaultLocale
	if hinted, ok := parseLocale(cmd.LocaleHint); ok {
		locale = hinted
	} else if detected, ok := p.catalog.detectLocale(norm); ok {
		locale = detected
	}

	now := cmd.Timestamp
	if now.IsZero() {
		now = time.Now().UTC()
	}

	res := &resolution{}
	res.sportID, _ = p.catalog.extractSport(norm, locale)
	res.span = p.catalog.resolveTemporal(norm, now, locale)
	res.participants = p.catalog.extractParticipants(norm)
	res.cost = p.catalog.extractCost(norm)
	res.venueQuery = p.catalog.extractVenueQuery(norm, locale)

	if res.venueQuery != "" && p.resolver != nil {
		var geo *venues.Geo
		if cmd.Context != nil {
			geo = cmd.Context.Geo
		}
		cand, err := p.resolver.Resolve(ctx, res.venueQuery, geo)
		if err != nil {
			p.logger.Warn("Venue directory unavailable, leaving venue unresolved",
				logger.String("query", res.venueQuery),
				logger.Error(err))
		} else {
			res.venue = cand
		}
	}

	confidence := aggregateConfidence(res)
	success := isSuccess(confidence, res)
	missing, suggestions := adviseMissing(res)
	errs := []string{}

	// The availability check needs both a venue and a window; a conflict is
	// advisory and never revokes success on its own.
	if res.venue != nil && res.span != nil && p.checker != nil {
		if conflicts := p.checker.Conflicts(ctx, res.venue.ID, res.span.start, res.span.end); len(conflicts) > 0 {
			errs = append(errs, ErrCodeVenueConflict)
			missing = append(missing, SlotAlternativeVenue)
			suggestions = append(suggestions, slotSuggestions[SlotAlternativeVenue])
			p.logger.Info("Requested window conflicts with existing bookings",
				logger.String("venue_id", res.venue.ID),
				logger.Int("conflicts", len(conflicts)))
		}
	}

	result := &ParseResult{
		Success:     success,
		Confidence:  confidence,
		Draft:       p.catalog.assembleDraft(norm, res),
		MissingInfo: missing,
		Suggestions: suggestions,
		Errors:      errs,
		Language:    string(locale),
	}

	if success {
		p.applyEnhancement(ctx, cmd, result)
	}

	p.logger.Debug("Command parsed",
		logger.String("language", result.Language),
		logger.Float64("confidence", result.Confidence),
		logger.Bool("success", result.Success),
		logger.Strings("missing", result.MissingInfo))
	return result
}

// applyEnhancement lets the configured enhancer improve title, description
// and requirements. Failures keep the template draft; nothing else in the
// result may change.
func (p *Parser) applyEnhancement(ctx context.Context, cmd Command, result *ParseResult) {
	req := enhance.Request{
		Text:            cmd.Text,
		Language:        result.Language,
		SportType:       result.Draft.SportType,
		EventType:       result.Draft.EventType,
		MaxParticipants: result.Draft.MaxParticipants,
		Title:           result.Draft.Title,
		Description:     result.Draft.Description,
	}
	if cmd.Context != nil {
		req.Preferences = cmd.Context.Preferences
	}
	if result.Draft.Venue != nil {
		req.VenueName = result.Draft.Venue.Name
	}
	if result.Draft.StartTime != nil {
		req.StartTime = *result.Draft.StartTime
	}

	enhanced, err := p.enhancer.Enhance(ctx, req)
	if err != nil {
		p.logger.Warn("Event enhancement failed, keeping template draft", logger.Error(err))
		return
	}
	if enhanced == nil {
		return
	}

	applied := false
	if enhanced.Title != "" {
		result.Draft.Title = enhanced.Title
		applied = true
	}
	if enhanced.Description != "" {
		result.Draft.Description = enhanced.Description
		applied = true
	}
	if len(enhanced.Requirements) > 0 {
		result.Draft.Requirements = enhanced.Requirements
		applied = true
	}
	result.AIEnhanced = applied
}

func emptyDraft() EventDraft {
	return EventDraft{
		EventType:    EventTypeMatch,
		SkillLevel:   SkillAll,
		Requirements: []string{},
		Equipment:    []string{},
	}
}
