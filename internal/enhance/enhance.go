package enhance

import (
	"context"
	"time"
)

// Request carries the deterministic draft fields an enhancer may improve
type Request struct {
	Text            string
	Language        string
	SportType       string
	EventType       string
	VenueName       string
	StartTime       time.Time
	MaxParticipants int
	Preferences     []string
	Title           string
	Description     string
}

// Result carries replacement fields. Empty fields leave the deterministic
// values untouched.
type Result struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// Enhancer improves event titles and descriptions. Implementations must be
// safe to drop entirely: a parse result is complete without them.
type Enhancer interface {
	Enhance(ctx context.Context, req Request) (*Result, error)
}

// Noop leaves every draft untouched. It is the default enhancer.
type Noop struct{}

// Enhance returns no changes
func (Noop) Enhance(ctx context.Context, req Request) (*Result, error) {
	return nil, nil
}
