package venues

import (
	"context"
)

// Venue represents one entry in the venue directory
type Venue struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	Surface   string   `json:"surface,omitempty"`
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lng"`
	Amenities []string `json:"amenities,omitempty"`
}

// Geo represents a user-supplied reference point for proximity scoring
type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Candidate represents a scored directory match for a venue query
type Candidate struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Latitude       float64 `json:"lat"`
	Longitude      float64 `json:"lng"`
	NameSimilarity float64 `json:"nameSimilarity"`
	ProximityScore float64 `json:"proximityScore"`
	CompositeScore float64 `json:"compositeScore"`
}

// Directory is the venue lookup collaborator. LookupByNamePrefix serves the
// cheap first pass; ScanAll backs the fuzzy fallback and may be expensive.
type Directory interface {
	LookupByNamePrefix(ctx context.Context, query string) ([]Venue, error)
	ScanAll(ctx context.Context) ([]Venue, error)
}
