package booking

import (
	"context"
	"time"
)

// Booking status values
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking represents a reserved time window at a venue
type Booking struct {
	ID      string    `json:"id"`
	VenueID string    `json:"venueId"`
	UserID  string    `json:"userId,omitempty"`
	Start   time.Time `json:"startTime"`
	End     time.Time `json:"endTime"`
	Status  string    `json:"status,omitempty"`
}

// Store is the booking lookup collaborator
type Store interface {
	FindOverlapping(ctx context.Context, venueID string, start, end time.Time) ([]Booking, error)
}

// Overlaps reports whether two time windows intersect. Windows that merely
// touch (one ends exactly when the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
