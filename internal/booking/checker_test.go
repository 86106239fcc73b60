package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sportbeacon/eventparse/pkg/logger"
)

type fakeStore struct {
	bookings []Booking
	err      error
}

func (s *fakeStore) FindOverlapping(ctx context.Context, venueID string, start, end time.Time) ([]Booking, error) {
	return s.bookings, s.err
}

func at(hour int) time.Time {
	return time.Date(2024, time.March, 21, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart int
		aEnd   int
		bStart int
		bEnd   int
		want   bool
	}{
		{"identical windows", 18, 20, 18, 20, true},
		{"partial overlap", 18, 20, 19, 21, true},
		{"containment", 18, 22, 19, 20, true},
		{"touching at the end does not overlap", 18, 20, 20, 22, false},
		{"touching at the start does not overlap", 18, 20, 16, 18, false},
		{"disjoint", 18, 20, 21, 23, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.aStart), at(tt.aEnd), at(tt.bStart), at(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckerConflicts(t *testing.T) {
	store := &fakeStore{bookings: []Booking{
		{ID: "b1", VenueID: "venue_001", Start: at(17), End: at(19)},
		{ID: "b2", VenueID: "venue_001", Start: at(19), End: at(21)},
	}}
	c := NewChecker(store, logger.Nop())

	conflicts := c.Conflicts(context.Background(), "venue_001", at(18), at(20))

	assert.Len(t, conflicts, 2)
}

func TestCheckerFailsOpenOnStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("store offline")}
	c := NewChecker(store, logger.Nop())

	conflicts := c.Conflicts(context.Background(), "venue_001", at(18), at(20))

	assert.Nil(t, conflicts)
}

func TestCheckerNilReceiver(t *testing.T) {
	var c *Checker

	assert.Nil(t, c.Conflicts(context.Background(), "venue_001", at(18), at(20)))
}

func TestCheckerNilStore(t *testing.T) {
	c := NewChecker(nil, logger.Nop())

	assert.Nil(t, c.Conflicts(context.Background(), "venue_001", at(18), at(20)))
}
