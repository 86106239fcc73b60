package booking

import (
	"context"
	"time"

	"github.com/sportbeacon/eventparse/pkg/logger"
)

// Checker answers whether a venue is free during a requested window
type Checker struct {
	store  Store
	logger *logger.Logger
}

// NewChecker creates a new availability checker backed by the given store
func NewChecker(store Store, log *logger.Logger) *Checker {
	return &Checker{
		store:  store,
		logger: log.Named("booking"),
	}
}

// Conflicts returns the bookings that overlap the requested window. When the
// store is unreachable the venue is treated as available: a parse must never
// block on the booking backend being up.
func (c *Checker) Conflicts(ctx context.Context, venueID string, start, end time.Time) []Booking {
	if c == nil || c.store == nil {
		return nil
	}

	found, err := c.store.FindOverlapping(ctx, venueID, start, end)
	if err != nil {
		c.logger.Warn("Booking store unavailable, assuming venue is free",
			logger.String("venue_id", venueID),
			logger.Error(err))
		return nil
	}
	return found
}
