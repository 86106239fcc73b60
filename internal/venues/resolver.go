package venues

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/sportbeacon/eventparse/pkg/logger"
)

// Scoring weights for the two resolution phases. The prefix phase leans on
// proximity more because the directory already vouched for the name; the
// fuzzy phase weights the name higher and additionally requires the composite
// to clear a threshold before accepting a candidate at all.
const (
	prefixSimilarityWeight = 0.6
	prefixProximityWeight  = 0.4
	fuzzySimilarityWeight  = 0.7
	fuzzyProximityWeight   = 0.3
	fuzzyAcceptThreshold   = 0.5

	// DefaultMaxDistanceKM is the distance at which proximity scores reach zero.
	DefaultMaxDistanceKM = 50.0
)

// Config represents the venue resolver configuration
type Config struct {
	MaxDistanceKM float64
}

// Resolver matches extracted venue names against the directory
type Resolver struct {
	directory     Directory
	maxDistanceKM float64
	logger        *logger.Logger
}

// NewResolver creates a new venue resolver backed by the given directory
func NewResolver(directory Directory, cfg Config, log *logger.Logger) *Resolver {
	if cfg.MaxDistanceKM <= 0 {
		cfg.MaxDistanceKM = DefaultMaxDistanceKM
	}
	return &Resolver{
		directory:     directory,
		maxDistanceKM: cfg.MaxDistanceKM,
		logger:        log.Named("venues"),
	}
}

// Resolve finds the best directory match for a venue name extracted from a
// command. The prefix phase accepts its best candidate outright since the
// directory already matched the name; the fuzzy fallback scans the full
// directory and accepts only a sufficiently close candidate. Returns nil when
// nothing acceptable was found.
func (r *Resolver) Resolve(ctx context.Context, query string, user *Geo) (*Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	matches, err := r.directory.LookupByNamePrefix(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("venue directory lookup failed: %w", err)
	}
	if len(matches) > 0 {
		best := r.bestCandidate(query, matches, user, prefixSimilarityWeight, prefixProximityWeight)
		r.logger.Debug("Venue resolved via prefix lookup",
			logger.String("query", query),
			logger.String("venue", best.Name),
			logger.Float64("score", best.CompositeScore))
		return best, nil
	}

	all, err := r.directory.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("venue directory scan failed: %w", err)
	}
	best := r.bestCandidate(query, all, user, fuzzySimilarityWeight, fuzzyProximityWeight)
	if best == nil || best.CompositeScore <= fuzzyAcceptThreshold {
		r.logger.Debug("No acceptable fuzzy venue match", logger.String("query", query))
		return nil, nil
	}
	r.logger.Debug("Venue resolved via fuzzy scan",
		logger.String("query", query),
		logger.String("venue", best.Name),
		logger.Float64("score", best.CompositeScore))
	return best, nil
}

// bestCandidate scores every venue and keeps the highest composite
func (r *Resolver) bestCandidate(query string, entries []Venue, user *Geo, simWeight, proxWeight float64) *Candidate {
	var best *Candidate
	for _, v := range entries {
		c := r.score(query, v, user, simWeight, proxWeight)
		if best == nil || c.CompositeScore > best.CompositeScore {
			best = &c
		}
	}
	return best
}

func (r *Resolver) score(query string, v Venue, user *Geo, simWeight, proxWeight float64) Candidate {
	sim := NameSimilarity(query, v.Name)
	prox := NeutralProximity
	if user != nil {
		prox = ProximityScore(DistanceKM(user.Lat, user.Lng, v.Latitude, v.Longitude), r.maxDistanceKM)
	}
	return Candidate{
		ID:             v.ID,
		Name:           v.Name,
		Latitude:       v.Latitude,
		Longitude:      v.Longitude,
		NameSimilarity: sim,
		ProximityScore: prox,
		CompositeScore: simWeight*sim + proxWeight*prox,
	}
}

// NameSimilarity returns a normalized edit-distance similarity between two
// names: 1 for equal strings ignoring case, 0 for entirely different ones.
func NameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(maxLen)
}
